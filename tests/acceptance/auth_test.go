package acceptance

import (
	"net/http"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	client := s.newClient()

	resp := s.postJSON(client, "/api/auth/register", dto.RegisterRequest{
		Username: "register-success",
		Email:    "register-success@example.com",
		Password: "Password123",
		FullName: "Reg Ister",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)

	s.Require().NotNil(authResp.User)
	s.NotZero(authResp.User.ID)
	s.Equal("register-success", authResp.User.Username)
	s.Equal("register-success@example.com", authResp.User.Email)
	s.Equal(domain.CredentialPassword, authResp.User.CredentialKind)
	s.Zero(authResp.User.Balance)
	s.Empty(authResp.User.PasswordHash, "password hash must not be serialized")
}

func (s *Suite) TestRegister_DuplicateUsername() {
	client := s.newClient()
	s.registerRider(client, "register-duplicate")

	resp := s.postJSON(s.newClient(), "/api/auth/register", dto.RegisterRequest{
		Username: "register-duplicate",
		Email:    "register-duplicate-2@example.com",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestRegister_InvalidEmail() {
	resp := s.postJSON(s.newClient(), "/api/auth/register", dto.RegisterRequest{
		Username: "register-bad-email",
		Email:    "not-an-email",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.postJSON(s.newClient(), "/api/auth/register", dto.RegisterRequest{
		Username: "register-weak",
		Email:    "register-weak@example.com",
		Password: "alllowercase",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	s.registerRider(s.newClient(), "login-success")

	client := s.newClient()
	resp := s.postJSON(client, "/api/auth/login", dto.LoginRequest{
		Username: "login-success",
		Password: "Password123",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)
	s.Require().NotNil(authResp.User)
	s.Equal("login-success", authResp.User.Username)

	meResp := s.get(client, "/api/auth/me")
	defer meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.registerRider(s.newClient(), "login-wrong-pass")

	resp := s.postJSON(s.newClient(), "/api/auth/login", dto.LoginRequest{
		Username: "login-wrong-pass",
		Password: "WrongPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_UnknownUser() {
	resp := s.postJSON(s.newClient(), "/api/auth/login", dto.LoginRequest{
		Username: "nobody-here",
		Password: "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_NoSession() {
	resp := s.get(s.newClient(), "/api/auth/me")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_RevokesSession() {
	client := s.newClient()
	s.registerRider(client, "logout-revoke")

	logoutResp := s.postJSON(client, "/api/auth/logout", struct{}{})
	defer logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)

	meResp := s.get(client, "/api/auth/me")
	defer meResp.Body.Close()
	s.Equal(http.StatusUnauthorized, meResp.StatusCode)
}

func (s *Suite) TestUpdateProfile() {
	client := s.newClient()
	s.registerRider(client, "profile-update")

	fullName := "New Name"
	req, err := http.NewRequest(http.MethodPut, s.BaseURL+"/api/auth/me", jsonBody(s, dto.UpdateProfileRequest{
		FullName: &fullName,
	}))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.StatusCode)

	var user domain.User
	s.decode(resp, &user)
	s.Equal("New Name", user.FullName)
}

func (s *Suite) TestChangePassword() {
	client := s.newClient()
	s.registerRider(client, "password-change")

	resp := s.postJSON(client, "/api/auth/change-password", dto.ChangePasswordRequest{
		CurrentPassword: "Password123",
		NewPassword:     "NewPassword456",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	oldLogin := s.postJSON(s.newClient(), "/api/auth/login", dto.LoginRequest{
		Username: "password-change",
		Password: "Password123",
	})
	defer oldLogin.Body.Close()
	s.Equal(http.StatusUnauthorized, oldLogin.StatusCode)

	newLogin := s.postJSON(s.newClient(), "/api/auth/login", dto.LoginRequest{
		Username: "password-change",
		Password: "NewPassword456",
	})
	defer newLogin.Body.Close()
	s.Equal(http.StatusOK, newLogin.StatusCode)
}
