// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gift-draw/models"
	"github.com/danielhkuo/gift-draw/notify"
	"github.com/danielhkuo/gift-draw/testutil"
	_ "github.com/lib/pq"
)

func TestGetGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)

	groupID, _, shareSlug := testutil.CreateTestGroup(t, db, cfg, "open")
	testutil.AddTestParticipant(t, db, groupID, "Alice")
	testutil.AddTestParticipant(t, db, groupID, "Bob")

	t.Run("public view", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/groups/"+shareSlug, nil, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetGroup(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.GroupPublicResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Name != "Test Group" {
			t.Errorf("Expected group name 'Test Group', got %q", resp.Name)
		}
		if resp.Status != models.StatusOpen {
			t.Errorf("Expected status open, got %q", resp.Status)
		}
		if resp.ParticipantCount != 2 {
			t.Errorf("Expected 2 participants, got %d", resp.ParticipantCount)
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/groups/nope", nil, nil)
		req.SetPathValue("slug", "nope")
		w := httptest.NewRecorder()
		handler.GetGroup(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetMyAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)
	drawHandler := NewDrawHandler(db, cfg, notify.LogNotifier{})

	groupID, adminKey, shareSlug := testutil.CreateTestGroup(t, db, cfg, "open")
	_, aliceToken := testutil.AddTestParticipant(t, db, groupID, "Alice")
	testutil.AddTestParticipant(t, db, groupID, "Bob")
	testutil.AddTestParticipant(t, db, groupID, "Carol")

	myAssignment := func(token string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/groups/"+shareSlug+"/my-assignment", nil,
			map[string]string{"X-Participant-Token": token})
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetMyAssignment(w, req)
		return w
	}

	t.Run("before the draw", func(t *testing.T) {
		w := myAssignment(aliceToken)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	// Run the draw
	w := executeRequest(drawHandler, groupID, adminKey, "30")
	testutil.AssertStatus(t, w, http.StatusOK)

	t.Run("after the draw", func(t *testing.T) {
		w := myAssignment(aliceToken)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MyAssignmentResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.RecipientName == "" {
			t.Error("Expected a recipient name")
		}
		if resp.RecipientName == "Alice" {
			t.Error("Participant assigned to themselves")
		}
		if resp.FinalBudget == "" {
			t.Error("Expected the final budget")
		}
	})

	t.Run("stable across reads", func(t *testing.T) {
		var first models.MyAssignmentResponse
		w := myAssignment(aliceToken)
		testutil.AssertJSON(t, w, &first)

		for i := 0; i < 3; i++ {
			var again models.MyAssignmentResponse
			w := myAssignment(aliceToken)
			testutil.AssertJSON(t, w, &again)
			if again.RecipientName != first.RecipientName {
				t.Errorf("Recipient changed between reads: %q vs %q", again.RecipientName, first.RecipientName)
			}
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		w := myAssignment("bogus-token")
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing token", func(t *testing.T) {
		w := myAssignment("")
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

// TestGetMyAssignmentSeeded pins the endpoint to a hand-built
// assignment cycle, so the recipient lookup is checked against known
// rows rather than whatever the generator produced.
func TestGetMyAssignmentSeeded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)

	groupID, _, shareSlug := testutil.CreateTestGroup(t, db, cfg, "drawn")
	aliceID, aliceToken := testutil.AddTestParticipant(t, db, groupID, "Alice")
	bobID, bobToken := testutil.AddTestParticipant(t, db, groupID, "Bob")
	carolID, carolToken := testutil.AddTestParticipant(t, db, groupID, "Carol")

	if _, err := db.Exec("UPDATE participant SET wishlist = 'tea' WHERE id = $1", bobID); err != nil {
		t.Fatalf("Failed to set wishlist: %v", err)
	}

	// Alice → Bob → Carol → Alice
	testutil.AddTestAssignment(t, db, groupID, aliceID, bobID)
	testutil.AddTestAssignment(t, db, groupID, bobID, carolID)
	testutil.AddTestAssignment(t, db, groupID, carolID, aliceID)

	expected := map[string]struct {
		token     string
		recipient string
		wishlist  string
	}{
		"Alice": {aliceToken, "Bob", "tea"},
		"Bob":   {bobToken, "Carol", ""},
		"Carol": {carolToken, "Alice", ""},
	}

	for name, want := range expected {
		req := testutil.MakeRequest("GET", "/groups/"+shareSlug+"/my-assignment", nil,
			map[string]string{"X-Participant-Token": want.token})
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetMyAssignment(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MyAssignmentResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.RecipientName != want.recipient {
			t.Errorf("%s: expected recipient %q, got %q", name, want.recipient, resp.RecipientName)
		}
		if resp.RecipientWishlist != want.wishlist {
			t.Errorf("%s: expected wishlist %q, got %q", name, want.wishlist, resp.RecipientWishlist)
		}
	}
}

func TestUpdateWishlist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)

	groupID, _, shareSlug := testutil.CreateTestGroup(t, db, cfg, "open")
	aliceID, aliceToken := testutil.AddTestParticipant(t, db, groupID, "Alice")

	req := testutil.MakeRequest("PUT", "/groups/"+shareSlug+"/wishlist",
		models.UpdateWishlistRequest{Wishlist: "wool socks, a good novel"},
		map[string]string{"X-Participant-Token": aliceToken})
	req.SetPathValue("slug", shareSlug)
	w := httptest.NewRecorder()
	handler.UpdateWishlist(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	var wishlist string
	if err := db.QueryRow("SELECT wishlist FROM participant WHERE id = $1", aliceID).Scan(&wishlist); err != nil {
		t.Fatalf("Failed to query wishlist: %v", err)
	}
	if wishlist != "wool socks, a good novel" {
		t.Errorf("Expected updated wishlist, got %q", wishlist)
	}

	// Wishlists stay editable on drawn groups
	if _, err := db.Exec("UPDATE santa_group SET status = 'drawn', drawn_at = NOW() WHERE id = $1", groupID); err != nil {
		t.Fatalf("Failed to mark group drawn: %v", err)
	}

	req = testutil.MakeRequest("PUT", "/groups/"+shareSlug+"/wishlist",
		models.UpdateWishlistRequest{Wishlist: "updated after draw"},
		map[string]string{"X-Participant-Token": aliceToken})
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	handler.UpdateWishlist(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestSuggestBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)

	groupID, _, shareSlug := testutil.CreateTestGroup(t, db, cfg, "open")
	_, aliceToken := testutil.AddTestParticipant(t, db, groupID, "Alice")

	suggest := func(amount, token string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/groups/"+shareSlug+"/budget-suggestions",
			models.SuggestBudgetRequest{Amount: amount},
			map[string]string{"X-Participant-Token": token})
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.SuggestBudget(w, req)
		return w
	}

	t.Run("valid suggestion", func(t *testing.T) {
		w := suggest("20", aliceToken)
		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("second suggestion replaces the first", func(t *testing.T) {
		w := suggest("35", aliceToken)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM budget_suggestion WHERE group_id = $1", groupID).Scan(&count); err != nil {
			t.Fatalf("Failed to count suggestions: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 suggestion after replacement, got %d", count)
		}

		var amount string
		if err := db.QueryRow("SELECT amount::text FROM budget_suggestion WHERE group_id = $1", groupID).Scan(&amount); err != nil {
			t.Fatalf("Failed to query amount: %v", err)
		}
		if amount != "35" {
			t.Errorf("Expected amount 35, got %q", amount)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		for _, amount := range []string{"", "abc", "-10", "0", "NaN", "Inf"} {
			w := suggest(amount, aliceToken)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		w := suggest("20", "bogus")
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("drawn group rejects suggestions", func(t *testing.T) {
		if _, err := db.Exec("UPDATE santa_group SET status = 'drawn', drawn_at = NOW() WHERE id = $1", groupID); err != nil {
			t.Fatalf("Failed to mark group drawn: %v", err)
		}

		w := suggest("40", aliceToken)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}
