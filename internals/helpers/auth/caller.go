package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"raportku_backend/internals/constants"
)

// Locals keys yang diisi middleware AuthJWT.
const (
	LocUserID     = "user_id"
	LocUserRole   = "userRole"
	LocStudentIDs = "student_ids"
	LocTokenExp   = "token_exp"
)

// Caller: identitas pemanggil yang sudah terverifikasi.
type Caller struct {
	UserID     uuid.UUID
	Role       string
	StudentIDs []uuid.UUID // anak (parent) / diri sendiri (student)
}

func GetCaller(c *fiber.Ctx) (Caller, error) {
	role, _ := c.Locals(LocUserRole).(string)
	if role == "" {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
	}
	out := Caller{Role: role}
	if s, ok := c.Locals(LocUserID).(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			out.UserID = id
		}
	}
	if ids, ok := c.Locals(LocStudentIDs).([]uuid.UUID); ok {
		out.StudentIDs = ids
	}
	return out, nil
}

// CanViewStudent: staff boleh semua siswa, parent/student hanya siswa yang tertaut.
func (cl Caller) CanViewStudent(studentID uuid.UUID) bool {
	if constants.Can(cl.Role, constants.CapViewAllReportCards) {
		return true
	}
	for _, id := range cl.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// UserIDPtr: nil kalau token tidak membawa id.
func (cl Caller) UserIDPtr() *uuid.UUID {
	if cl.UserID == uuid.Nil {
		return nil
	}
	id := cl.UserID
	return &id
}
