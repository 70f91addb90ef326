package domain

// Department is the formal organizational unit stored on a profile. It is
// unrelated to the lowercase routing token derived from a role string.
type Department string

const (
	DeptGeneration             Department = "GENERATION"
	DeptTransmission           Department = "TRANSMISSION"
	DeptDistribution           Department = "DISTRIBUTION"
	DeptFinanceAccounts        Department = "FINANCE & ACCOUNTS"
	DeptHumanResources         Department = "HUMAN RESOURCES"
	DeptPlanningDevelopment    Department = "PLANNING & DEVELOPMENT"
	DeptMaintenanceEngineering Department = "MAINTENANCE & ENGINEERING"
	DeptOperationsControl      Department = "OPERATIONS & CONTROL"
	DeptInformationTechnology  Department = "INFORMATION TECHNOLOGY"
	DeptAuditInspection        Department = "AUDIT & INSPECTION"
	DeptProcurementLogistics   Department = "PROCUREMENT & LOGISTICS"
	DeptSafetyEnvironment      Department = "SAFETY & ENVIRONMENT"
	DeptLegalRegulatory        Department = "LEGAL & REGULATORY"
	DeptCorporateAffairs       Department = "CORPORATE AFFAIRS"
	DeptTrainingDevelopment    Department = "TRAINING & DEVELOPMENT"
	DeptQualityAssurance       Department = "QUALITY ASSURANCE"
	DeptProjectManagement      Department = "PROJECT MANAGEMENT"
	DeptResearchDevelopment    Department = "RESEARCH & DEVELOPMENT"
	DeptCustomerServices       Department = "CUSTOMER SERVICES"
	DeptSecurityServices       Department = "SECURITY SERVICES"
	DeptTransportVehicle       Department = "TRANSPORT & VEHICLE"
	DeptStoreInventory         Department = "STORE & INVENTORY"
	DeptConstructionCivil      Department = "CONSTRUCTION & CIVIL"
	DeptElectricalMaintenance  Department = "ELECTRICAL MAINTENANCE"
	DeptMechanicalMaintenance  Department = "MECHANICAL MAINTENANCE"
	DeptInstrumentationControl Department = "INSTRUMENTATION & CONTROL"
	DeptCommunicationTelecom   Department = "COMMUNICATION & TELECOM"
	DeptCoalHandling           Department = "COAL HANDLING"
	DeptWaterTreatment         Department = "WATER TREATMENT"
	DeptLaboratoryServices     Department = "LABORATORY SERVICES"
	DeptGeneralAdministration  Department = "GENERAL ADMINISTRATION"
)

var departments = []Department{
	DeptGeneration, DeptTransmission, DeptDistribution, DeptFinanceAccounts,
	DeptHumanResources, DeptPlanningDevelopment, DeptMaintenanceEngineering,
	DeptOperationsControl, DeptInformationTechnology, DeptAuditInspection,
	DeptProcurementLogistics, DeptSafetyEnvironment, DeptLegalRegulatory,
	DeptCorporateAffairs, DeptTrainingDevelopment, DeptQualityAssurance,
	DeptProjectManagement, DeptResearchDevelopment, DeptCustomerServices,
	DeptSecurityServices, DeptTransportVehicle, DeptStoreInventory,
	DeptConstructionCivil, DeptElectricalMaintenance, DeptMechanicalMaintenance,
	DeptInstrumentationControl, DeptCommunicationTelecom, DeptCoalHandling,
	DeptWaterTreatment, DeptLaboratoryServices, DeptGeneralAdministration,
}

// Departments returns the department enumeration.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// Valid reports whether d is a known department.
func (d Department) Valid() bool {
	for _, candidate := range departments {
		if candidate == d {
			return true
		}
	}
	return false
}
