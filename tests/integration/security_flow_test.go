package integration

import (
	"net/http"
	"testing"
)

func TestSecurity_MissingOrBadCredentials(t *testing.T) {
	app := setupApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/budgets"},
		{"POST", "/api/budgets"},
		{"GET", "/api/budgets/1"},
		{"GET", "/api/auth/user"},
		{"POST", "/api/auth/update-password"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := app.request(p.method, p.path, "", "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			if result["error"] != "No Autorizado" {
				t.Errorf("expected the fixed unauthorized payload, got %v", result)
			}
		})
	}

	t.Run("garbage bearer token", func(t *testing.T) {
		rec := app.request("GET", "/api/budgets", "", "not.a.jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestSecurity_BudgetOwnership(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "owner@test.com", "password123")
	ownerToken := app.loginUser(t, "owner@test.com", "password123")
	app.registerUser(t, "intruder@test.com", "password123")
	intruderToken := app.loginUser(t, "intruder@test.com", "password123")

	budgetID := app.createBudget(t, ownerToken, "Privado", 1000)
	path := budgetPath(budgetID)

	t.Run("another user's budget is a 403, not a 404", func(t *testing.T) {
		for _, method := range []string{"GET", "PUT", "DELETE"} {
			body := ""
			if method == "PUT" {
				body = `{"name":"Robado","amount":1}`
			}
			rec := app.request(method, path, body, intruderToken)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("%s: expected 403, got %d: %s", method, rec.Code, rec.Body.String())
			}
			result := parseJSON(t, rec)
			if result["error"] != "Accion no valida" {
				t.Errorf("%s: unexpected payload: %v", method, result)
			}
		}
	})

	t.Run("the intruder cannot add expenses either", func(t *testing.T) {
		rec := app.request("POST", path+"/expenses", `{"name":"Ajeno","amount":1}`, intruderToken)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("a budget that does not exist is a 404 for everyone", func(t *testing.T) {
		rec := app.request("GET", "/api/budgets/999999", "", intruderToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("the other user's list stays empty", func(t *testing.T) {
		rec := app.request("GET", "/api/budgets", "", intruderToken)
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})
}

func TestSecurity_MalformedIDs(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "ids@test.com", "password123")
	token := app.loginUser(t, "ids@test.com", "password123")

	t.Run("non-numeric budget id", func(t *testing.T) {
		rec := app.request("GET", "/api/budgets/abc", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		errs, ok := result["errors"].([]interface{})
		if !ok || len(errs) != 1 || errs[0] != "ID no valido" {
			t.Errorf("unexpected payload: %v", result)
		}
	})

	t.Run("non-numeric expense id", func(t *testing.T) {
		budgetID := app.createBudget(t, token, "IDs", 10)
		rec := app.request("GET", budgetPath(budgetID)+"/expenses/xyz", "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestSecurity_ExpenseScopedToBudget(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "scope@test.com", "password123")
	token := app.loginUser(t, "scope@test.com", "password123")

	firstID := app.createBudget(t, token, "Primero", 100)
	first := budgetPath(firstID)

	rec := app.request("POST", first+"/expenses", `{"name":"Cafe","amount":5}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense creation failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", first, "", token)
	detail := parseJSON(t, rec)
	expenses := detail["expenses"].([]interface{})
	expenseID := expenses[0].(map[string]interface{})["id"].(float64)

	secondID := app.createBudget(t, token, "Segundo", 200)

	// The same expense probed through the caller's other budget is missing.
	rec = app.request("GET", expensePathOf(secondID, expenseID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a cross-budget probe, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["error"] != "Gasto no encontrado" {
		t.Errorf("unexpected payload: %v", result)
	}
}
