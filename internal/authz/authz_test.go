package authz

import "testing"

func TestWildcardMatch(t *testing.T) {
	cases := []struct {
		text, pattern string
		want          bool
	}{
		{"library/nginx", "*", true},
		{"library/nginx", "library/nginx", true},
		{"library/nginx", "library/*", true},
		{"library/nginx", "*/nginx", true},
		{"library/nginx", "lib*nginx", true},
		{"library/nginx", "lib*x*x", false},
		{"library/nginx", "other/*", false},
		{"v1.2.3", "v*.*.3", true},
		{"", "*", true},
		{"anything", "", false},
	}

	for _, c := range cases {
		if got := WildcardMatch(c.text, c.pattern); got != c.want {
			t.Errorf("WildcardMatch(%q, %q) = %v, want %v", c.text, c.pattern, got, c.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	perms := []Permission{
		{Repository: "library/*", Tag: "*", Actions: []Action{ActionPull}},
		{Repository: "private/app", Tag: "v1*", Actions: []Action{ActionPush, ActionDelete}},
	}

	if !Authorize(perms, "library/nginx", "latest", ActionPull) {
		t.Error("expected pull on library/nginx to be allowed")
	}
	if Authorize(perms, "library/nginx", "latest", ActionPush) {
		t.Error("expected push on library/nginx to be denied")
	}
	if !Authorize(perms, "private/app", "v1.0", ActionPush) {
		t.Error("expected push on private/app:v1.0 to be allowed")
	}
	if Authorize(perms, "private/app", "v2.0", ActionPush) {
		t.Error("expected push on private/app:v2.0 to be denied")
	}
	if Authorize(perms, "other/app", "latest", ActionPull) {
		t.Error("expected pull on unrelated repository to be denied")
	}
}

func TestAuthorizeBlobTagForcedToWildcard(t *testing.T) {
	scoped := []Permission{{Repository: "library/nginx", Tag: "stable", Actions: []Action{ActionPull}}}
	if Authorize(scoped, "library/nginx", "*", ActionPull) {
		t.Error("tag-scoped permission must not authorize blob-level (tag=*) access")
	}

	wildcard := []Permission{{Repository: "library/nginx", Tag: "*", Actions: []Action{ActionPull}}}
	if !Authorize(wildcard, "library/nginx", "*", ActionPull) {
		t.Error("wildcard-tag permission should authorize blob-level access")
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin([]Permission{{Repository: "*", Tag: "*", Actions: []Action{ActionPull}}}) {
		t.Error("pull-only wildcard permission must not grant admin")
	}
	if !IsAdmin([]Permission{{Repository: "*", Tag: "*", Actions: []Action{ActionDelete}}}) {
		t.Error("wildcard delete permission must grant admin")
	}
	if IsAdmin([]Permission{{Repository: "library/*", Tag: "*", Actions: []Action{ActionDelete}}}) {
		t.Error("non-wildcard repository delete permission must not grant admin")
	}
}

func TestContains(t *testing.T) {
	p := Permission{Repository: "a", Tag: "b", Actions: []Action{ActionPull, ActionPush}}
	same := Permission{Repository: "a", Tag: "b", Actions: []Action{ActionPush, ActionPull}}
	different := Permission{Repository: "a", Tag: "b", Actions: []Action{ActionPull}}

	if !Contains([]Permission{p}, same) {
		t.Error("expected structurally identical permission (different action order) to be detected")
	}
	if Contains([]Permission{p}, different) {
		t.Error("expected permission with fewer actions to be distinct")
	}
}
