package handlers

import (
	"context"
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/movienight/ranker/models"
	"github.com/movienight/ranker/notify"
	"github.com/movienight/ranker/testutil"
)

// fakeNotifier records deliveries and fails for recipients in fail.
type fakeNotifier struct {
	sent map[string][]string
	fail map[string]bool
}

func (f *fakeNotifier) Send(_ context.Context, recipient, text string) error {
	if f.fail[recipient] {
		return errors.New("delivery refused")
	}
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	f.sent[recipient] = append(f.sent[recipient], text)
	return nil
}

var _ notify.Notifier = (*fakeNotifier)(nil)

func approxEqual(got, want float64) bool {
	return math.Abs(got-want) < 0.005
}

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	packID := testutil.CreateTestPack(t, db, "Friday Pack")
	heatID := testutil.AddTestMovie(t, db, packID, "Heat")
	alienID := testutil.AddTestMovie(t, db, packID, "Alien")
	alice := testutil.CreateTestVoter(t, db, "ext-1", "alice", models.RoleMember)
	carol := testutil.CreateTestVoter(t, db, "ext-2", "carol", models.RoleMember)
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	testutil.CastTestVote(t, db, alice.ID, heatID, packID, 8)
	testutil.CastTestVote(t, db, alice.ID, alienID, packID, 6)
	testutil.CastTestVote(t, db, carol.ID, heatID, packID, 10)

	handler := NewResultsHandler(db, testutil.GetTestConfig(), &fakeNotifier{})

	req := testutil.MakeRequest("GET", "/packs/"+packID+"/results", nil, map[string]string{"X-Voter-ID": "admin-1"})
	req.SetPathValue("id", packID)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.NoVotes {
		t.Fatal("expected results, got a no-votes notice")
	}
	if len(resp.Rankings) != 2 {
		t.Fatalf("expected 2 ranked movies, got %d", len(resp.Rankings))
	}

	// alice's damping divisor is log2(3), carol's is log2(2) = 1:
	// Heat ≈ 8/1.585 + 10 ≈ 15.05, Alien ≈ 6/1.585 ≈ 3.79.
	if resp.Rankings[0].MovieID != heatID {
		t.Errorf("expected Heat ranked first, got %s", resp.Rankings[0].Title)
	}
	if !approxEqual(resp.Rankings[0].Total, 15.05) {
		t.Errorf("expected Heat total ≈ 15.05, got %.4f", resp.Rankings[0].Total)
	}
	if !approxEqual(resp.Rankings[1].Total, 3.79) {
		t.Errorf("expected Alien total ≈ 3.79, got %.4f", resp.Rankings[1].Total)
	}

	if !approxEqual(resp.Contributions["alice"]["Heat"], 5.05) {
		t.Errorf("expected alice→Heat ≈ 5.05, got %.4f", resp.Contributions["alice"]["Heat"])
	}
	if !approxEqual(resp.Contributions["carol"]["Heat"], 10.0) {
		t.Errorf("expected carol→Heat = 10.00, got %.4f", resp.Contributions["carol"]["Heat"])
	}
}

func TestGetResultsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	packID := testutil.CreateTestPack(t, db, "Friday Pack")
	testutil.AddTestMovie(t, db, packID, "Heat")
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	handler := NewResultsHandler(db, testutil.GetTestConfig(), &fakeNotifier{})

	req := testutil.MakeRequest("GET", "/packs/"+packID+"/results", nil, map[string]string{"X-Voter-ID": "admin-1"})
	req.SetPathValue("id", packID)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.NoVotes {
		t.Error("an empty pack should produce a no-votes notice")
	}
}

func TestGetResultsUnknownPack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	handler := NewResultsHandler(db, testutil.GetTestConfig(), &fakeNotifier{})

	req := testutil.MakeRequest("GET", "/packs/nope/results", nil, map[string]string{"X-Voter-ID": "admin-1"})
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestGetResultsRequiresAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	packID := testutil.CreateTestPack(t, db, "Friday Pack")
	testutil.CreateTestVoter(t, db, "ext-1", "alice", models.RoleMember)

	handler := NewResultsHandler(db, testutil.GetTestConfig(), &fakeNotifier{})

	// Missing identity.
	req := testutil.MakeRequest("GET", "/packs/"+packID+"/results", nil, nil)
	req.SetPathValue("id", packID)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, 401)

	// Plain member.
	req = testutil.MakeRequest("GET", "/packs/"+packID+"/results", nil, map[string]string{"X-Voter-ID": "ext-1"})
	req.SetPathValue("id", packID)
	w = httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, 403)
}

func TestAnnounce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	packID := testutil.CreateTestPack(t, db, "Friday Pack")
	heatID := testutil.AddTestMovie(t, db, packID, "Heat")
	alienID := testutil.AddTestMovie(t, db, packID, "Alien")
	alice := testutil.CreateTestVoter(t, db, "ext-1", "alice", models.RoleMember)
	carol := testutil.CreateTestVoter(t, db, "ext-2", "carol", models.RoleMember)
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	testutil.CastTestVote(t, db, alice.ID, heatID, packID, 8)
	testutil.CastTestVote(t, db, alice.ID, alienID, packID, 6)
	testutil.CastTestVote(t, db, carol.ID, heatID, packID, 10)

	fake := &fakeNotifier{}
	handler := NewResultsHandler(db, testutil.GetTestConfig(), fake)

	req := testutil.MakeRequest("POST", "/results/announce", nil, map[string]string{"X-Voter-ID": "admin-1"})
	w := httptest.NewRecorder()
	handler.Announce(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.AnnounceResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Recipients != 2 || resp.Delivered != 2 {
		t.Errorf("expected 2 recipients and 2 delivered, got %d/%d", resp.Recipients, resp.Delivered)
	}

	// Each participant gets both reports.
	for _, recipient := range []string{"ext-1", "ext-2"} {
		msgs := fake.sent[recipient]
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages for %s, got %d", recipient, len(msgs))
		}
		if !strings.Contains(msgs[0], "🏆") {
			t.Errorf("first message should be the ranking, got %q", msgs[0])
		}
		if !strings.Contains(msgs[1], "📊") {
			t.Errorf("second message should be the contributions, got %q", msgs[1])
		}
	}
}

func TestAnnounceContinuesPastDeliveryFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	packID := testutil.CreateTestPack(t, db, "Friday Pack")
	heatID := testutil.AddTestMovie(t, db, packID, "Heat")
	alienID := testutil.AddTestMovie(t, db, packID, "Alien")
	alice := testutil.CreateTestVoter(t, db, "ext-1", "alice", models.RoleMember)
	carol := testutil.CreateTestVoter(t, db, "ext-2", "carol", models.RoleMember)
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	testutil.CastTestVote(t, db, alice.ID, heatID, packID, 8)
	testutil.CastTestVote(t, db, carol.ID, alienID, packID, 10)

	fake := &fakeNotifier{fail: map[string]bool{"ext-1": true}}
	handler := NewResultsHandler(db, testutil.GetTestConfig(), fake)

	req := testutil.MakeRequest("POST", "/results/announce", nil, map[string]string{"X-Voter-ID": "admin-1"})
	w := httptest.NewRecorder()
	handler.Announce(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.AnnounceResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Recipients != 2 || resp.Delivered != 1 {
		t.Errorf("expected 2 recipients and 1 delivered, got %d/%d", resp.Recipients, resp.Delivered)
	}
	if len(fake.sent["ext-2"]) != 2 {
		t.Error("a failed recipient must not block the others")
	}
}

func TestAnnounceNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestPack(t, db, "Friday Pack")
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	fake := &fakeNotifier{}
	handler := NewResultsHandler(db, testutil.GetTestConfig(), fake)

	req := testutil.MakeRequest("POST", "/results/announce", nil, map[string]string{"X-Voter-ID": "admin-1"})
	w := httptest.NewRecorder()
	handler.Announce(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.AnnounceResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.NoVotes {
		t.Error("expected a no-votes notice")
	}
	if len(fake.sent) != 0 {
		t.Error("nothing should be delivered for an empty pack")
	}
}

func TestAnnounceNoPacks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestVoter(t, db, "admin-1", "boss", models.RoleAdmin)

	handler := NewResultsHandler(db, testutil.GetTestConfig(), &fakeNotifier{})

	req := testutil.MakeRequest("POST", "/results/announce", nil, map[string]string{"X-Voter-ID": "admin-1"})
	w := httptest.NewRecorder()
	handler.Announce(w, req)
	testutil.AssertStatus(t, w, 404)
}
