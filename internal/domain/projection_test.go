package domain

import "testing"

func sampleBook() *Book {
	return &Book{
		ID:    "b1",
		Title: "Livro X",
		Chapters: []Chapter{
			{
				ID:           "c1",
				Title:        "Cap 1",
				Definitions:  []Definition{{Termo: "A", Definicao: "B"}},
				Propositions: []Proposition{{Text: "C"}},
			},
		},
	}
}

func TestProject(t *testing.T) {
	t.Run("renders the reference scenario", func(t *testing.T) {
		want := "# Livro X\n\n## Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n"
		if got := Project(sampleBook()); got != want {
			t.Errorf("Project() =\n%q\nwant\n%q", got, want)
		}
	})

	t.Run("no book selected", func(t *testing.T) {
		if got := Project(nil); got != "# Sem livro\n\n" {
			t.Errorf("Project(nil) = %q", got)
		}
	})

	t.Run("placeholders for blank fields", func(t *testing.T) {
		book := &Book{
			Chapters: []Chapter{
				{Title: "Primeiro"},
				{
					Definitions:  []Definition{{Definicao: "x"}, {Termo: "T", Definicao: ""}},
					Propositions: []Proposition{{Text: ""}},
				},
			},
		}
		want := "# Livro\n\n" +
			"## Primeiro\n\n" +
			"## Capítulo 2\n### Termos\n- **Termo 1**: x\n- **T**: \n### Proposições\n- \n\n"
		if got := Project(book); got != want {
			t.Errorf("Project() =\n%q\nwant\n%q", got, want)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		book := sampleBook()
		first := Project(book)
		second := Project(book)
		if first != second {
			t.Errorf("projection changed between calls: %q vs %q", first, second)
		}
	})
}

func TestProjectExport(t *testing.T) {
	book := sampleBook()
	book.Chapters = append(book.Chapters, Chapter{ID: "c2"}, Chapter{ID: "c3", Title: "Fim"})

	want := "## I. Cap 1\n### Termos\n- **A**: B\n### Proposições\n- C\n\n" +
		"## II. Capítulo 2\n\n" +
		"## III. Fim\n\n"
	if got := ProjectExport(book); got != want {
		t.Errorf("ProjectExport() =\n%q\nwant\n%q", got, want)
	}

	if got := ProjectExport(nil); got != "" {
		t.Errorf("ProjectExport(nil) = %q, want empty", got)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Livro X", "Livro_X.pdf"},
		{"Como  Ler\tUm Livro", "Como_Ler_Um_Livro.pdf"},
		{"", "livro.pdf"},
		{"a/b", "a-b.pdf"},
	}

	for _, tt := range tests {
		if got := ExportFilename(tt.title); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
