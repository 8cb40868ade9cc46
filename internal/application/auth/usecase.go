package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
	"github.com/amigopos/amigo-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y la
// bitácora de actividad de los usuarios.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	branchRepo   repository.BranchRepository
	activityRepo repository.ActivityLogRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	activityRepo repository.ActivityLogRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, branchRepo: branchRepo, activityRepo: activityRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario asignado a una sucursal: hashea el password con
// bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
// El endpoint que llega aquí exige rol admin (lo resuelve el middleware).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: email y password (mínimo 8 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, in.BranchID)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleCashier:
	default:
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		BranchID:     in.BranchID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, registra la entrada en la bitácora y devuelve
// token + usuario. El token lleva sucursal y rol en los claims.
func (uc *AuthUseCase) Login(in dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.BranchID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.recordActivity(user.ID, entity.ActivityLogin, ip, userAgent)
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Logout registra la salida en la bitácora. El token es stateless y expira
// solo; el endpoint existe para que la bitácora tenga el cierre de sesión.
func (uc *AuthUseCase) Logout(userID, ip, userAgent string) {
	uc.recordActivity(userID, entity.ActivityLogout, ip, userAgent)
}

// recordActivity escribe la bitácora en modo best-effort: un fallo se registra
// en el log y no bloquea la operación que lo originó.
func (uc *AuthUseCase) recordActivity(userID, action, ip, userAgent string) {
	entry := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := uc.activityRepo.Create(entry); err != nil {
		log.Printf("[AUTH][%s] no se pudo registrar %s en bitácora: %v", userID, action, err)
	}
}

// ActivityLog lista la bitácora, más reciente primero, con el nombre de cada
// usuario ya resuelto. userID vacío lista todos los usuarios.
func (uc *AuthUseCase) ActivityLog(userID string, page dto.PageRequest) ([]dto.ActivityLogResponse, error) {
	page.DefaultPage()
	entries, err := uc.activityRepo.List(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.UserID]
		if !ok {
			if u, uErr := uc.userRepo.GetByID(e.UserID); uErr == nil && u != nil {
				name = u.Name
			}
			names[e.UserID] = name
		}
		out = append(out, dto.ActivityLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			UserName:  name,
			Action:    e.Action,
			Timestamp: e.Timestamp,
			IPAddress: e.IPAddress,
			UserAgent: e.UserAgent,
		})
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		BranchID:  u.BranchID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
