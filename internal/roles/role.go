package roles

// Role is an organizational title as stored on a profile.
type Role string

const (
	RoleChairman          Role = "Chairman"
	RoleManagingDirector  Role = "Managing Director"
	RoleDirectorGen       Role = "Director (Generation)"
	RoleDirectorTrans     Role = "Director (Transmission)"
	RoleDirectorDist      Role = "Director (Distribution)"
	RoleDirectorFinance   Role = "Director (Finance)"
	RoleDirectorHR        Role = "Director (HR)"
	RoleDirectorPlanning  Role = "Director (Planning)"
	RoleGMGeneration      Role = "GM Generation"
	RoleGMTransmission    Role = "GM Transmission"
	RoleGMDistribution    Role = "GM Distribution"
	RoleGMFinance         Role = "GM Finance"
	RoleGMHR              Role = "GM HR"
	RoleGMPlanning        Role = "GM Planning"
	RoleGMOperations      Role = "GM Operations"
	RoleGMMaintenance     Role = "GM Maintenance"
	RoleGMIT              Role = "GM IT"
	RoleGMAudit           Role = "GM Audit"
	RoleDGMGeneration     Role = "DGM Generation"
	RoleDGMTransmission   Role = "DGM Transmission"
	RoleDGMDistribution   Role = "DGM Distribution"
	RoleDGMFinance        Role = "DGM Finance"
	RoleDGMHR             Role = "DGM HR"
	RoleDGMPlanning       Role = "DGM Planning"
	RoleDGMOperations     Role = "DGM Operations"
	RoleDGMMaintenance    Role = "DGM Maintenance"
	RoleDGMIT             Role = "DGM IT"
	RoleAGMGeneration     Role = "AGM Generation"
	RoleAGMTransmission   Role = "AGM Transmission"
	RoleAGMDistribution   Role = "AGM Distribution"
	RoleAGMFinance        Role = "AGM Finance"
	RoleChiefEngineer     Role = "Chief Engineer"
	RoleSeniorEngElec     Role = "Senior Engineer (Electrical)"
	RoleSeniorEngMech     Role = "Senior Engineer (Mechanical)"
	RoleSeniorEngCivil    Role = "Senior Engineer (Civil)"
	RoleSeniorEngCI       Role = "Senior Engineer (Control & Instrumentation)"
	RoleEngElec           Role = "Engineer (Electrical)"
	RoleEngMech           Role = "Engineer (Mechanical)"
	RoleEngCivil          Role = "Engineer (Civil)"
	RoleEngCI             Role = "Engineer (Control & Instrumentation)"
	RoleEngElectronics    Role = "Engineer (Electronics)"
	RoleAsstEngElec       Role = "Assistant Engineer (Electrical)"
	RoleAsstEngMech       Role = "Assistant Engineer (Mechanical)"
	RolePlantOperator     Role = "Plant Operator"
	RoleSeniorPlantOp     Role = "Senior Plant Operator"
	RoleControlRoomOp     Role = "Control Room Operator"
	RoleSubstationOp      Role = "Substation Operator"
	RoleSeniorTechnician  Role = "Senior Technician"
	RoleTechnicianElec    Role = "Technician (Electrical)"
	RoleTechnicianMech    Role = "Technician (Mechanical)"
	RoleSystemAnalyst     Role = "System Analyst"
	RoleFinancialOfficer  Role = "Financial Officer"
	RoleHROfficer         Role = "HR Officer"
	RolePlanningOfficer   Role = "Planning Officer"
	RoleOperationsOfficer Role = "Operations Officer"
	RoleMaintenanceOff    Role = "Maintenance Officer"
	RoleSafetyOfficer     Role = "Safety Officer"
	RoleSecurityOfficer   Role = "Security Officer"
	RoleAdminAssistant    Role = "Administrative Assistant"
	RoleCustomer          Role = "Customer"
)

var allRoles = []Role{
	RoleChairman, RoleManagingDirector,
	RoleDirectorGen, RoleDirectorTrans, RoleDirectorDist, RoleDirectorFinance, RoleDirectorHR, RoleDirectorPlanning,
	RoleGMGeneration, RoleGMTransmission, RoleGMDistribution, RoleGMFinance, RoleGMHR,
	RoleGMPlanning, RoleGMOperations, RoleGMMaintenance, RoleGMIT, RoleGMAudit,
	RoleDGMGeneration, RoleDGMTransmission, RoleDGMDistribution, RoleDGMFinance,
	RoleDGMHR, RoleDGMPlanning, RoleDGMOperations, RoleDGMMaintenance, RoleDGMIT,
	RoleAGMGeneration, RoleAGMTransmission, RoleAGMDistribution, RoleAGMFinance,
	RoleChiefEngineer, RoleSeniorEngElec, RoleSeniorEngMech, RoleSeniorEngCivil, RoleSeniorEngCI,
	RoleEngElec, RoleEngMech, RoleEngCivil, RoleEngCI, RoleEngElectronics,
	RoleAsstEngElec, RoleAsstEngMech,
	RolePlantOperator, RoleSeniorPlantOp, RoleControlRoomOp, RoleSubstationOp,
	RoleSeniorTechnician, RoleTechnicianElec, RoleTechnicianMech,
	RoleSystemAnalyst,
	RoleFinancialOfficer, RoleHROfficer, RolePlanningOfficer, RoleOperationsOfficer,
	RoleMaintenanceOff, RoleSafetyOfficer, RoleSecurityOfficer,
	RoleAdminAssistant, RoleCustomer,
}

var roleSet = func() map[Role]struct{} {
	set := make(map[Role]struct{}, len(allRoles))
	for _, r := range allRoles {
		set[r] = struct{}{}
	}
	return set
}()

// AllRoles returns the stored role enumeration in declaration order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := roleSet[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
