package storage

import "testing"

func TestIndexNoteRepositoryIdempotent(t *testing.T) {
	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.NoteRepository("library/nginx"); err != nil {
		t.Fatalf("NoteRepository: %v", err)
	}
	if err := idx.NoteRepository("library/nginx"); err != nil {
		t.Fatalf("NoteRepository (repeat): %v", err)
	}

	names, err := idx.ListRepositories("", -1)
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if len(names) != 1 || names[0] != "library/nginx" {
		t.Fatalf("got %v, want single entry library/nginx", names)
	}
}

func TestIndexListRepositoriesExplicitZeroLimit(t *testing.T) {
	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.NoteRepository("library/nginx"); err != nil {
		t.Fatalf("NoteRepository: %v", err)
	}

	names, err := idx.ListRepositories("", 0)
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected zero repositories for n=0, got %v", names)
	}
}

func TestIndexListRepositoriesPagination(t *testing.T) {
	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	for _, repo := range []string{"a/repo", "b/repo", "c/repo"} {
		if err := idx.NoteRepository(repo); err != nil {
			t.Fatalf("NoteRepository(%s): %v", repo, err)
		}
	}

	names, err := idx.ListRepositories("a/repo", 1)
	if err != nil {
		t.Fatalf("ListRepositories: %v", err)
	}
	if len(names) != 1 || names[0] != "b/repo" {
		t.Fatalf("got %v, want [b/repo]", names)
	}
}

func TestIndexPutRawAndScanPrefixOrdered(t *testing.T) {
	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.PutRaw("x:1", []byte("one")); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}
	if err := idx.PutRaw("x:2", []byte("two")); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}
	if err := idx.PutRaw("y:1", []byte("other")); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}

	values, err := idx.ScanPrefixOrdered("x:", 0)
	if err != nil {
		t.Fatalf("ScanPrefixOrdered: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("got %d values, want 2", len(values))
	}

	limited, err := idx.ScanPrefixOrdered("x:", 1)
	if err != nil {
		t.Fatalf("ScanPrefixOrdered limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("got %d values, want 1", len(limited))
	}
}
