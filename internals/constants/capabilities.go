package constants

// Capability: satu aksi yang bisa dijaga per role.
type Capability string

const (
	CapManageMasterData    Capability = "master_data.manage"
	CapEnterScores         Capability = "scores.enter"
	CapEnterAttendance     Capability = "attendance.enter"
	CapViewAttendance      Capability = "attendance.view"
	CapGenerateReportCards Capability = "report_cards.generate"
	CapEditHomeroomNote    Capability = "report_cards.homeroom_note"
	CapLockReportCards     Capability = "report_cards.lock"
	CapViewReportCards     Capability = "report_cards.view"
	CapViewAllReportCards  Capability = "report_cards.view_all"
	CapDecidePromotions    Capability = "promotions.decide"
	CapViewPromotions      Capability = "promotions.view"
)

var capabilityMatrix = map[string]map[Capability]bool{
	RoleAdmin: {
		CapManageMasterData:    true,
		CapEnterScores:         true,
		CapEnterAttendance:     true,
		CapViewAttendance:      true,
		CapGenerateReportCards: true,
		CapEditHomeroomNote:    true,
		CapLockReportCards:     true,
		CapViewReportCards:     true,
		CapViewAllReportCards:  true,
		CapDecidePromotions:    true,
		CapViewPromotions:      true,
	},
	RoleTeacher: {
		CapEnterScores:         true,
		CapEnterAttendance:     true,
		CapViewAttendance:      true,
		CapGenerateReportCards: true,
		CapEditHomeroomNote:    true,
		CapViewReportCards:     true,
		CapViewAllReportCards:  true,
		CapViewPromotions:      true,
	},
	RoleParent: {
		CapViewReportCards: true,
		CapViewAttendance:  true,
	},
	RoleStudent: {
		CapViewReportCards: true,
		CapViewAttendance:  true,
	},
}

// Can: satu-satunya tempat aturan role → aksi.
func Can(role string, capability Capability) bool {
	return capabilityMatrix[role][capability]
}
