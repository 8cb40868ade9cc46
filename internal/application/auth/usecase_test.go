package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amigopos/amigo-pos/internal/application/auth"
	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
	"github.com/amigopos/amigo-pos/pkg/jwt"
)

const (
	testSecret   = "secreto-de-prueba-no-usar"
	testPassword = "contrasena123"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}, byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error)       { return f.byID[id], nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return f.byEmail[email], nil }
func (f *fakeUserRepo) Update(u *entity.User) error                   { return f.Create(u) }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error)         { return nil, nil }
func (f *fakeUserRepo) ListAdminEmails() ([]string, error)            { return nil, nil }

type fakeBranchRepo struct{}

func (fakeBranchRepo) Create(*entity.Branch) error { return nil }
func (fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	if id == "branch-1" {
		return &entity.Branch{ID: "branch-1", Name: "Sucursal Centro"}, nil
	}
	return nil, nil
}
func (fakeBranchRepo) Update(*entity.Branch) error     { return nil }
func (fakeBranchRepo) List() ([]*entity.Branch, error) { return nil, nil }
func (fakeBranchRepo) Delete(string) error             { return nil }

type fakeActivityRepo struct {
	entries []*entity.ActivityLog
	err     error
}

func (f *fakeActivityRepo) Create(e *entity.ActivityLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeActivityRepo) List(userID string, limit, offset int) ([]*entity.ActivityLog, error) {
	if userID == "" {
		return f.entries, nil
	}
	var out []*entity.ActivityLog
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeActivityRepo) {
	users := newFakeUserRepo()
	activity := &fakeActivityRepo{}
	uc := auth.NewAuthUseCase(users, fakeBranchRepo{}, activity, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "amigo-pos-test",
	})
	return uc, users, activity
}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(dto.RegisterRequest{
		Email:    email,
		Password: testPassword,
		Name:     "Usuario de Prueba",
		Role:     role,
		BranchID: "branch-1",
	})
	require.NoError(t, err)
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// TestLogin_EmiteTokenConClaims cubre el ciclo completo: registro, login con
// credenciales correctas y verificación de que el token HS256 lleva usuario,
// sucursal y rol en los claims. El middleware depende de esos tres campos.
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc, _, activity := newAuthUC()
	registered := register(t, uc, "caja@farmacia.test", entity.RoleCashier)

	resp, err := uc.Login(dto.LoginRequest{Email: "caja@farmacia.test", Password: testPassword}, "10.0.0.5", "test-agent")

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	userID, branchID, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err, "el token emitido debe validar con el mismo secret")
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, "branch-1", branchID)
	assert.Equal(t, entity.RoleCashier, role)

	// El login queda en la bitácora con IP y user agent.
	require.Len(t, activity.entries, 1)
	assert.Equal(t, entity.ActivityLogin, activity.entries[0].Action)
	assert.Equal(t, "10.0.0.5", activity.entries[0].IPAddress)
}

func TestLogin_RechazaPasswordIncorrecto(t *testing.T) {
	uc, _, activity := newAuthUC()
	register(t, uc, "caja@farmacia.test", entity.RoleCashier)

	_, err := uc.Login(dto.LoginRequest{Email: "caja@farmacia.test", Password: "otra-cosa"}, "", "")

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, activity.entries, "un intento fallido no genera entrada de login")
}

func TestLogin_UsuarioDesconocido(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@farmacia.test", Password: testPassword}, "", "")

	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivoEsRechazado(t *testing.T) {
	uc, users, _ := newAuthUC()
	registered := register(t, uc, "exempleado@farmacia.test", entity.RoleCashier)
	users.byID[registered.ID].Status = "inactive"

	_, err := uc.Login(dto.LoginRequest{Email: "exempleado@farmacia.test", Password: testPassword}, "", "")

	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_BitacoraCaidaNoBloqueaElLogin(t *testing.T) {
	uc, _, activity := newAuthUC()
	register(t, uc, "caja@farmacia.test", entity.RoleCashier)
	activity.err = errors.New("tabla llena")

	resp, err := uc.Login(dto.LoginRequest{Email: "caja@farmacia.test", Password: testPassword}, "", "")

	require.NoError(t, err, "la bitácora es best-effort: su fallo no puede impedir el login")
	assert.NotEmpty(t, resp.Token)
}

func TestRegister_HasheaElPasswordYAsignaDefectos(t *testing.T) {
	uc, users, _ := newAuthUC()

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "nuevo@farmacia.test",
		Password: testPassword,
		BranchID: "branch-1",
	})

	require.NoError(t, err)
	stored := users.byID[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, testPassword, stored.PasswordHash, "el password nunca se guarda en texto plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(testPassword)))
	assert.Equal(t, entity.RoleCashier, stored.Role, "sin rol explícito el alta es de cajero")
	assert.Equal(t, "nuevo@farmacia.test", stored.Name, "sin nombre se usa el email")
	assert.Equal(t, "active", stored.Status)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _, _ := newAuthUC()
	register(t, uc, "caja@farmacia.test", entity.RoleCashier)

	// email duplicado
	_, err := uc.Register(dto.RegisterRequest{Email: "caja@farmacia.test", Password: testPassword, BranchID: "branch-1"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// password corto
	_, err = uc.Register(dto.RegisterRequest{Email: "otro@farmacia.test", Password: "corto", BranchID: "branch-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// sucursal inexistente
	_, err = uc.Register(dto.RegisterRequest{Email: "otro@farmacia.test", Password: testPassword, BranchID: "no-existe"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// rol inventado
	_, err = uc.Register(dto.RegisterRequest{Email: "otro@farmacia.test", Password: testPassword, BranchID: "branch-1", Role: "superuser"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogoutYBitacora_ResuelveNombres(t *testing.T) {
	uc, _, activity := newAuthUC()
	registered := register(t, uc, "caja@farmacia.test", entity.RoleCashier)

	_, err := uc.Login(dto.LoginRequest{Email: "caja@farmacia.test", Password: testPassword}, "10.0.0.5", "agente")
	require.NoError(t, err)
	uc.Logout(registered.ID, "10.0.0.5", "agente")

	require.Len(t, activity.entries, 2)
	assert.Equal(t, entity.ActivityLogout, activity.entries[1].Action)

	log, err := uc.ActivityLog(registered.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "Usuario de Prueba", log[0].UserName, "la bitácora sale con el nombre resuelto, no solo el ID")
}
