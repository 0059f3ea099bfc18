package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleAdmin, CapLockReportCards))
	assert.True(t, Can(RoleAdmin, CapDecidePromotions))

	assert.True(t, Can(RoleTeacher, CapGenerateReportCards))
	assert.False(t, Can(RoleTeacher, CapLockReportCards))
	assert.False(t, Can(RoleTeacher, CapDecidePromotions))
	assert.False(t, Can(RoleTeacher, CapManageMasterData))

	for _, role := range []string{RoleParent, RoleStudent} {
		assert.True(t, Can(role, CapViewReportCards), role)
		assert.False(t, Can(role, CapViewAllReportCards), role)
		assert.False(t, Can(role, CapEnterScores), role)
	}

	assert.False(t, Can("", CapViewReportCards))
	assert.False(t, Can("dkm", CapViewReportCards))
}

func TestEveryRoleHasMatrixEntry(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, IsKnownRole(r))
		assert.Contains(t, capabilityMatrix, r)
	}
	assert.False(t, IsKnownRole("Admin"))
}
