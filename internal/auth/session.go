package auth

import (
	"kasirpos-backend/internal/database"
	"kasirpos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Session: konteks user yang sedang login, dibangun dari claims JWT
// dan dioper eksplisit ke service (bukan singleton global).
type Session struct {
	UserID     uint
	UserName   string
	Role       models.UserRole
	BusinessID uint
	BranchID   *uint // nil untuk owner
}

// SessionFromCtx membangun Session dari locals yang diisi JWTMiddleware.
// UserName diambil dari database karena tidak dibawa di token.
func SessionFromCtx(c *fiber.Ctx) (*Session, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Informasi user tidak ditemukan")
	}

	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	businessID, _ := c.Locals(CtxBusinessIDKey).(uint)

	sess := &Session{
		UserID:     userID,
		Role:       role,
		BusinessID: businessID,
	}
	if bPtr, ok := c.Locals(CtxBranchIDKey).(*uint); ok && bPtr != nil {
		sess.BranchID = bPtr
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "User tidak ditemukan")
	}
	sess.UserName = user.Name

	return sess, nil
}

// ResolveBranchID: kasir/admin cabang selalu memakai cabang dari token,
// owner harus menyebut branch id secara eksplisit.
func (s *Session) ResolveBranchID(requested *uint) (uint, error) {
	if s.Role == models.RoleOwner {
		if requested == nil {
			return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id wajib diisi")
		}
		return *requested, nil
	}
	if s.BranchID == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "Informasi cabang tidak ditemukan")
	}
	return *s.BranchID, nil
}
