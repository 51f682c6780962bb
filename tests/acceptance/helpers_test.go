package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
)

func jsonBody(s *Suite, body interface{}) *bytes.Buffer {
	data, err := json.Marshal(body)
	s.Require().NoError(err)
	return bytes.NewBuffer(data)
}

func (s *Suite) postJSON(client *http.Client, path string, body interface{}) *http.Response {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := client.Post(s.BaseURL+path, "application/json", bytes.NewBuffer(data))
	s.Require().NoError(err)
	return resp
}

func (s *Suite) get(client *http.Client, path string) *http.Response {
	resp, err := client.Get(s.BaseURL + path)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) decode(resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

// registerRider creates an account through the API and leaves the session
// cookie in the client's jar.
func (s *Suite) registerRider(client *http.Client, username string) *domain.User {
	resp := s.postJSON(client, "/api/auth/register", dto.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Password123",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)
	s.Require().NotNil(authResp.User)
	return authResp.User
}

// createScooter registers a scooter using an already authenticated client.
func (s *Suite) createScooter(client *http.Client, code string) *domain.Scooter {
	resp := s.postJSON(client, "/api/scooters", dto.CreateScooterRequest{
		Code:         code,
		BatteryLevel: 80,
		Latitude:     51.5072,
		Longitude:    -0.1276,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var scooter domain.Scooter
	s.decode(resp, &scooter)
	return &scooter
}

// addBalance tops up the authenticated client's wallet.
func (s *Suite) addBalance(client *http.Client, amount float64) {
	resp := s.postJSON(client, "/api/payments/add-balance", dto.AddBalanceRequest{Amount: amount})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}
