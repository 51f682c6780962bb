package acceptance

import (
	"fmt"
	"net/http"

	"github.com/avetkin/scooter-rental/internal/domain"
	"github.com/avetkin/scooter-rental/internal/dto"
)

func (s *Suite) TestScooters_SeededFleet() {
	resp := s.get(s.newClient(), "/api/scooters")
	s.Equal(http.StatusOK, resp.StatusCode)

	var scooters []*domain.Scooter
	s.decode(resp, &scooters)

	s.GreaterOrEqual(len(scooters), seedScooters)
	for _, sc := range scooters[:seedScooters] {
		s.Regexp(`^[A-Z][0-9]{3}$`, sc.Code)
		s.GreaterOrEqual(sc.BatteryLevel, 20)
		s.LessOrEqual(sc.BatteryLevel, 100)
	}
}

func (s *Suite) TestScooters_GetUnknown() {
	resp := s.get(s.newClient(), "/api/scooters/999999")
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestRides_FullLifecycle() {
	client := s.newClient()
	s.registerRider(client, "ride-lifecycle")
	s.addBalance(client, 50)

	scooter := s.createScooter(client, "Z901")

	startResp := s.postJSON(client, "/api/rides/start", dto.StartRideRequest{
		ScooterID:      scooter.ID,
		StartLatitude:  51.5072,
		StartLongitude: -0.1276,
	})
	s.Equal(http.StatusCreated, startResp.StatusCode)

	var ride domain.Ride
	s.decode(startResp, &ride)
	s.Equal(domain.RideActive, ride.Status)
	s.Equal(scooter.ID, ride.ScooterID)
	s.Nil(ride.EndTime)

	lockedResp := s.get(client, fmt.Sprintf("/api/scooters/%d", scooter.ID))
	var locked domain.Scooter
	s.decode(lockedResp, &locked)
	s.False(locked.IsAvailable, "scooter must be locked while the ride is active")

	activeResp := s.get(client, "/api/rides/active")
	s.Equal(http.StatusOK, activeResp.StatusCode)
	var active domain.Ride
	s.decode(activeResp, &active)
	s.Equal(ride.ID, active.ID)

	endResp := s.postJSON(client, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{
		EndLatitude:  51.5080,
		EndLongitude: -0.1290,
	})
	s.Equal(http.StatusOK, endResp.StatusCode)

	var ended dto.EndRideResponse
	s.decode(endResp, &ended)

	s.Require().NotNil(ended.Ride)
	s.Equal(domain.RideCompleted, ended.Ride.Status)
	s.NotNil(ended.Ride.EndTime)
	s.Require().NotNil(ended.Ride.Cost)
	s.GreaterOrEqual(*ended.Ride.Cost, 1.00, "cost includes the base fee")

	s.Require().NotNil(ended.Payment)
	s.Equal(domain.PaymentSuccess, ended.Payment.Status)
	s.InDelta(*ended.Ride.Cost, ended.Payment.Amount, 1e-9)

	freedResp := s.get(client, fmt.Sprintf("/api/scooters/%d", scooter.ID))
	var freed domain.Scooter
	s.decode(freedResp, &freed)
	s.True(freed.IsAvailable, "scooter must be released after the ride ends")

	meResp := s.get(client, "/api/auth/me")
	var me domain.User
	s.decode(meResp, &me)
	s.InDelta(50-*ended.Ride.Cost, me.Balance, 1e-9)

	noActiveResp := s.get(client, "/api/rides/active")
	defer noActiveResp.Body.Close()
	s.Equal(http.StatusNotFound, noActiveResp.StatusCode)

	historyResp := s.get(client, "/api/rides")
	s.Equal(http.StatusOK, historyResp.StatusCode)
	var history []*domain.Ride
	s.decode(historyResp, &history)
	s.Len(history, 1)
}

func (s *Suite) TestRides_SecondStartRejected() {
	client := s.newClient()
	s.registerRider(client, "ride-double-start")

	first := s.createScooter(client, "Z902")
	second := s.createScooter(client, "Z903")

	startResp := s.postJSON(client, "/api/rides/start", dto.StartRideRequest{ScooterID: first.ID})
	s.Equal(http.StatusCreated, startResp.StatusCode)
	var ride domain.Ride
	s.decode(startResp, &ride)

	again := s.postJSON(client, "/api/rides/start", dto.StartRideRequest{ScooterID: second.ID})
	defer again.Body.Close()
	s.Equal(http.StatusBadRequest, again.StatusCode)

	endResp := s.postJSON(client, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{})
	defer endResp.Body.Close()
	s.Equal(http.StatusOK, endResp.StatusCode)
}

func (s *Suite) TestRides_UnavailableScooterRejected() {
	owner := s.newClient()
	s.registerRider(owner, "ride-scooter-owner")
	scooter := s.createScooter(owner, "Z904")

	startResp := s.postJSON(owner, "/api/rides/start", dto.StartRideRequest{ScooterID: scooter.ID})
	s.Equal(http.StatusCreated, startResp.StatusCode)
	startResp.Body.Close()

	other := s.newClient()
	s.registerRider(other, "ride-scooter-taken")

	resp := s.postJSON(other, "/api/rides/start", dto.StartRideRequest{ScooterID: scooter.ID})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRides_EndForeignRideForbidden() {
	rider := s.newClient()
	s.registerRider(rider, "ride-owner")
	scooter := s.createScooter(rider, "Z905")

	startResp := s.postJSON(rider, "/api/rides/start", dto.StartRideRequest{ScooterID: scooter.ID})
	s.Equal(http.StatusCreated, startResp.StatusCode)
	var ride domain.Ride
	s.decode(startResp, &ride)

	intruder := s.newClient()
	s.registerRider(intruder, "ride-intruder")

	resp := s.postJSON(intruder, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{})
	defer resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestRides_EndTwiceRejected() {
	client := s.newClient()
	s.registerRider(client, "ride-end-twice")
	scooter := s.createScooter(client, "Z906")

	startResp := s.postJSON(client, "/api/rides/start", dto.StartRideRequest{ScooterID: scooter.ID})
	var ride domain.Ride
	s.decode(startResp, &ride)

	first := s.postJSON(client, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{})
	defer first.Body.Close()
	s.Equal(http.StatusOK, first.StatusCode)

	second := s.postJSON(client, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{})
	defer second.Body.Close()
	s.Equal(http.StatusBadRequest, second.StatusCode)
}

func (s *Suite) TestRides_RequireSession() {
	resp := s.postJSON(s.newClient(), "/api/rides/start", dto.StartRideRequest{ScooterID: 1})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestPayments_HistoryAfterRide() {
	client := s.newClient()
	s.registerRider(client, "payment-history")
	s.addBalance(client, 20)

	scooter := s.createScooter(client, "Z907")

	startResp := s.postJSON(client, "/api/rides/start", dto.StartRideRequest{ScooterID: scooter.ID})
	var ride domain.Ride
	s.decode(startResp, &ride)

	endResp := s.postJSON(client, fmt.Sprintf("/api/rides/%d/end", ride.ID), dto.EndRideRequest{})
	s.Equal(http.StatusOK, endResp.StatusCode)
	endResp.Body.Close()

	resp := s.get(client, "/api/payments")
	s.Equal(http.StatusOK, resp.StatusCode)

	var payments []*domain.Payment
	s.decode(resp, &payments)
	s.Require().Len(payments, 1)
	s.Equal(ride.ID, payments[0].RideID)
	s.Equal(domain.PaymentSuccess, payments[0].Status)
}
