package storage

import "testing"

func TestManifestPutGetByTagAndDigest(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}

	body := []byte(`{"mediaType":"application/vnd.oci.image.manifest.v1+json","layers":[]}`)
	d, err := ms.Put("library/nginx", "latest", "application/vnd.oci.image.manifest.v1+json", body)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	gotBody, ct, gotDigest, err := ms.Get("library/nginx", "latest")
	if err != nil {
		t.Fatalf("Get by tag: %v", err)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("got body %q, want %q", gotBody, body)
	}
	if gotDigest != d {
		t.Fatalf("got digest %v, want %v", gotDigest, d)
	}
	if ct != "application/vnd.oci.image.manifest.v1+json" {
		t.Fatalf("got content type %q", ct)
	}

	gotBody2, _, gotDigest2, err := ms.Get("library/nginx", d.String())
	if err != nil {
		t.Fatalf("Get by digest: %v", err)
	}
	if string(gotBody2) != string(body) || gotDigest2 != d {
		t.Fatal("expected identical content when read by digest reference")
	}
}

func TestManifestGetNotFound(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}
	if _, _, _, err := ms.Get("library/nginx", "missing"); err != ErrManifestNotFound {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestManifestNegativeCacheClearedByLaterPut(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}

	// First miss populates the negative cache for this path.
	if _, _, _, err := ms.Get("library/nginx", "latest"); err != ErrManifestNotFound {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
	if _, _, _, err := ms.Get("library/nginx", "latest"); err != ErrManifestNotFound {
		t.Fatalf("expected cached ErrManifestNotFound, got %v", err)
	}

	body := []byte(`{"pushed":"after miss"}`)
	if _, err := ms.Put("library/nginx", "latest", "application/json", body); err != nil {
		t.Fatalf("Put: %v", err)
	}

	gotBody, _, _, err := ms.Get("library/nginx", "latest")
	if err != nil {
		t.Fatalf("expected manifest visible after Put clears negative cache, got %v", err)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("got %q, want %q", gotBody, body)
	}
}

func TestManifestDeleteLeavesDigestCopy(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}

	body := []byte(`{}`)
	d, err := ms.Put("library/nginx", "latest", "application/json", body)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := ms.Delete("library/nginx", "latest"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, _, err := ms.Get("library/nginx", "latest"); err != ErrManifestNotFound {
		t.Fatalf("expected tag reference gone, got %v", err)
	}
	if _, _, _, err := ms.Get("library/nginx", d.String()); err != nil {
		t.Fatalf("expected digest reference to survive tag deletion: %v", err)
	}
}

func TestListTagsPaginationAndDigestExclusion(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}

	for _, tag := range []string{"a", "b", "c", "d"} {
		if _, err := ms.Put("repo", tag, "application/json", []byte(`{"tag":"`+tag+`"}`)); err != nil {
			t.Fatalf("Put %s: %v", tag, err)
		}
	}

	tags, err := ms.ListTags("repo", "", -1)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 4 {
		t.Fatalf("expected 4 tags (digest files excluded), got %v", tags)
	}

	paged, err := ms.ListTags("repo", "a", 2)
	if err != nil {
		t.Fatalf("ListTags paged: %v", err)
	}
	if len(paged) != 2 || paged[0] != "b" || paged[1] != "c" {
		t.Fatalf("unexpected page: %v", paged)
	}
}

func TestListTagsExplicitZeroLimitYieldsEmptyNotNil(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}
	if _, err := ms.Put("repo", "latest", "application/json", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	tags, err := ms.ListTags("repo", "", 0)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if tags == nil {
		t.Fatal("expected empty slice, not nil, for n=0")
	}
	if len(tags) != 0 {
		t.Fatalf("expected zero tags for n=0, got %v", tags)
	}
}

func TestListTagsUnknownRepository(t *testing.T) {
	ms, err := NewManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewManifestStore: %v", err)
	}
	tags, err := ms.ListTags("never/written", "", -1)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}
