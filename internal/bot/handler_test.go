package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farewatch/farewatch/internal/amadeus"
)

const (
	authorizedChat int64 = 42
	someUser       int64 = 7
)

func newTestHandler(srvURL string, authorized int64) *Handler {
	c := &amadeus.Client{APIKey: "id", APISecret: "secret"}
	if srvURL != "" {
		c.TokenURL = srvURL + "/token"
		c.SearchURL = srvURL + "/search"
	}
	return NewHandler(c, authorized, 5, nil)
}

func roundTripServer(t *testing.T, data string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		_, _ = w.Write([]byte(`{"data":` + data + `}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func authorizedReq(userID int64, arg string) Request {
	return Request{ChatID: authorizedChat, UserID: userID, Arg: arg}
}

func TestUnauthorizedChatIsDeniedWithoutStateChange(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	for _, cmd := range []string{"start", "set_origin", "set_destination", "set_date", "set_window", "status", "stop", "search"} {
		reply := h.Handle(context.Background(), cmd, Request{ChatID: 99, UserID: someUser, Arg: "LAX"})
		if reply != replyDenied {
			t.Fatalf("%s: expected denial, got %q", cmd, reply)
		}
	}
	if _, ok := h.Sessions.Get(someUser); ok {
		t.Fatalf("denied commands must not create state")
	}
}

func TestZeroAuthorizedChatDisablesGate(t *testing.T) {
	h := newTestHandler("", 0)
	reply := h.Handle(context.Background(), "start", Request{ChatID: 12345, UserID: someUser})
	if reply == replyDenied {
		t.Fatalf("gate must be disabled when no authorized chat is configured")
	}
}

func TestCommandsBeforeStartWarn(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	for cmd, arg := range map[string]string{
		"set_origin":      "MAD",
		"set_destination": "FCO",
		"set_date":        "2025-12-01",
		"set_window":      "2",
		"status":          "",
		"search":          "",
	} {
		if reply := h.Handle(context.Background(), cmd, authorizedReq(someUser, arg)); reply != replyStartFirst {
			t.Fatalf("%s: expected start-first warning, got %q", cmd, reply)
		}
	}
	if _, ok := h.Sessions.Get(someUser); ok {
		t.Fatalf("warned commands must not create a session")
	}
}

func TestStartSeedsDefaultSession(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	reply := h.Handle(context.Background(), "start", authorizedReq(someUser, ""))
	if !strings.Contains(reply, "/search") {
		t.Fatalf("start reply should list commands, got %q", reply)
	}
	sess, ok := h.Sessions.Get(someUser)
	if !ok {
		t.Fatalf("start must create a session")
	}
	if sess.Origin != "LAX" || sess.Destination != "CDG" || sess.Date != "2025-10-26" || sess.Window != 3 {
		t.Fatalf("unexpected defaults: %+v", sess)
	}
}

func TestSettersMutateSession(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	if reply := h.Handle(context.Background(), "set_origin", authorizedReq(someUser, "mad")); reply != "origin updated to MAD" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if reply := h.Handle(context.Background(), "set_destination", authorizedReq(someUser, "fco")); reply != "destination updated to FCO" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if reply := h.Handle(context.Background(), "set_date", authorizedReq(someUser, "2025-12-01")); reply != "date updated to 2025-12-01" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if reply := h.Handle(context.Background(), "set_window", authorizedReq(someUser, "5")); reply != "search window updated to 5 days" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	sess, _ := h.Sessions.Get(someUser)
	if sess.Origin != "MAD" || sess.Destination != "FCO" || sess.Date != "2025-12-01" || sess.Window != 5 {
		t.Fatalf("session not updated: %+v", sess)
	}
}

func TestSetterArgumentValidation(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	cases := map[string][2]string{
		"set_origin": {"", "usage: /set_origin XXX"},
		"set_date":   {"tomorrow", "usage: /set_date YYYY-MM-DD"},
		"set_window": {"soon", "usage: /set_window N"},
	}
	for cmd, c := range cases {
		if reply := h.Handle(context.Background(), cmd, authorizedReq(someUser, c[0])); reply != c[1] {
			t.Fatalf("%s: expected %q, got %q", cmd, c[1], reply)
		}
	}
	sess, _ := h.Sessions.Get(someUser)
	if sess != defaultSession() {
		t.Fatalf("invalid arguments must not mutate the session: %+v", sess)
	}
}

func TestStatusReportsConfiguration(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))
	reply := h.Handle(context.Background(), "status", authorizedReq(someUser, ""))
	for _, want := range []string{"origin: LAX", "destination: CDG", "date: 2025-10-26", "window: +/-3 days"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("status missing %q: %s", want, reply)
		}
	}
}

func TestStopClearsSession(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	if reply := h.Handle(context.Background(), "stop", authorizedReq(someUser, "")); reply != "session stopped and configuration cleared." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if _, ok := h.Sessions.Get(someUser); ok {
		t.Fatalf("stop must delete the session")
	}
	if reply := h.Handle(context.Background(), "stop", authorizedReq(someUser, "")); reply != "no active session." {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestUnknownCommandYieldsNoReply(t *testing.T) {
	h := newTestHandler("", authorizedChat)
	if reply := h.Handle(context.Background(), "frobnicate", authorizedReq(someUser, "")); reply != "" {
		t.Fatalf("unknown command must be ignored, got %q", reply)
	}
}

const roundTripOffer = `[{
	"price":{"total":"812.40","currency":"USD"},
	"validatingAirlineCodes":["AF"],
	"itineraries":[
		{"duration":"PT11H30M","segments":[{"departure":{"iataCode":"LAX","at":"2025-10-23T10:15:00"},"arrival":{"iataCode":"CDG","at":"2025-10-24T06:45:00"},"carrierCode":"AF","number":"77"}]},
		{"duration":"PT12H10M","segments":[{"departure":{"iataCode":"CDG","at":"2025-10-29T11:00:00"},"arrival":{"iataCode":"LAX","at":"2025-10-29T14:30:00"},"carrierCode":"AF","number":"66"}]}
	],
	"travelerPricings":[{"fareDetailsBySegment":[{"cabin":"ECONOMY","includedCheckedBags":{"quantity":1}}]}]
}]`

func TestSearchDerivesWindowAndRepliesWithDetail(t *testing.T) {
	var gotDeparture, gotReturn string
	srv := roundTripServer(t, roundTripOffer, func(r *http.Request) {
		gotDeparture = r.URL.Query().Get("departureDate")
		gotReturn = r.URL.Query().Get("returnDate")
	})
	h := newTestHandler(srv.URL, authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	reply := h.Handle(context.Background(), "search", authorizedReq(someUser, ""))

	// date 2025-10-26 with a 3-day window brackets the trip.
	if gotDeparture != "2025-10-23" || gotReturn != "2025-10-29" {
		t.Fatalf("expected 2025-10-23/2025-10-29, got %s/%s", gotDeparture, gotReturn)
	}
	for _, want := range []string{"PRICE ALERT (OUTBOUND)", "PRICE ALERT (RETURN)", "cabin: ECONOMY | checked bags: 1", "total price: 812.4 USD"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("search reply missing %q: %s", want, reply)
		}
	}
}

func TestSearchNoOffers(t *testing.T) {
	srv := roundTripServer(t, "[]", nil)
	h := newTestHandler(srv.URL, authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	if reply := h.Handle(context.Background(), "search", authorizedReq(someUser, "")); reply != replyNoFlights {
		t.Fatalf("expected no-flights reply, got %q", reply)
	}
}

func TestSearchFailureIsGenericMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	h := newTestHandler(srv.URL, authorizedChat)
	h.Handle(context.Background(), "start", authorizedReq(someUser, ""))

	if reply := h.Handle(context.Background(), "search", authorizedReq(someUser, "")); reply != replySearchFail {
		t.Fatalf("expected generic failure reply, got %q", reply)
	}
}
