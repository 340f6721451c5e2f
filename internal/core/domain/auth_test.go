package domain

import "testing"

func TestAPIClient_HasScope(t *testing.T) {
	client := &APIClient{ID: "site-app", Scopes: []Scope{ScopeValidate, ScopeRead}}

	if !client.HasScope(ScopeValidate) {
		t.Error("expected validate scope")
	}
	if client.HasScope(ScopeSubmit) {
		t.Error("did not expect submit scope")
	}
}

func TestAuthContext_HasScope(t *testing.T) {
	authCtx := &AuthContext{ClientID: "site-app", Scopes: []Scope{ScopeSubmit}}

	if !authCtx.HasScope(ScopeSubmit) {
		t.Error("expected submit scope")
	}
	if authCtx.HasScope(ScopeRead) {
		t.Error("did not expect read scope")
	}

	empty := &AuthContext{}
	if empty.HasScope(ScopeValidate) {
		t.Error("empty context should hold no scopes")
	}
}
