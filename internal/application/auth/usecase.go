package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
	"github.com/cafevaldore/tienda-api/internal/domain"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
	"github.com/cafevaldore/tienda-api/internal/domain/repository"
	"github.com/cafevaldore/tienda-api/pkg/jwt"
)

// TokenConfig parámetros de emisión de JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase registro, login y cambio de contraseña. El rol no se persiste: se
// resuelve en cada login contra la lista de emails administradores, así un
// email puede promoverse o degradarse solo con configuración.
type UseCase struct {
	userRepo    repository.UserRepository
	token       TokenConfig
	adminEmails map[string]bool
}

// NewUseCase construye el caso de uso de autenticación. adminEmails es la
// lista configurada de correos con rol admin.
func NewUseCase(userRepo repository.UserRepository, token TokenConfig, adminEmails []string) *UseCase {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &UseCase{userRepo: userRepo, token: token, adminEmails: admins}
}

func (uc *UseCase) roleFor(email string) string {
	if uc.adminEmails[strings.ToLower(email)] {
		return entity.RoleAdmin
	}
	return entity.RoleCustomer
}

// Register crea la cuenta del cliente y devuelve sesión iniciada.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.session(user)
}

// Login verifica credenciales y emite el token de sesión. El error es el mismo
// para email inexistente y contraseña incorrecta.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

// ChangePassword cambia la contraseña de la cuenta autenticada previa
// verificación de la actual.
func (uc *UseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(userID, string(hash))
}

// Profile devuelve los datos de la cuenta autenticada.
func (uc *UseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user, uc.roleFor(user.Email))
	return &resp, nil
}

func (uc *UseCase) session(user *entity.User) (*dto.LoginResponse, error) {
	role := uc.roleFor(user.Email)
	token, err := jwt.Generate(uc.token.Secret, user.ID, user.Email, role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user, role)}, nil
}

func toUserResponse(u *entity.User, role string) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      role,
		CreatedAt: u.CreatedAt,
	}
}
