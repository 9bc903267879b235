package extract

import "testing"

func TestProjectExtractor_TitleAndDescription(t *testing.T) {
	extractor := NewProjectExtractor(mustCatalog(t))

	text := "Project Title: Coastal Wetland Restoration\nProject Description: Restore 40 acres of tidal wetland habitat.\nOther content follows."
	info := extractor.Extract(text)

	if info.Title != "Coastal Wetland Restoration" {
		t.Errorf("Expected title 'Coastal Wetland Restoration', got %q", info.Title)
	}
	if info.Description != "Restore 40 acres of tidal wetland habitat." {
		t.Errorf("Unexpected description: %q", info.Description)
	}
}

func TestProjectExtractor_FirstMatchWins(t *testing.T) {
	extractor := NewProjectExtractor(mustCatalog(t))

	text := "Project Title: First Title\nAppendix copy. Project Title: Second Title\n"
	info := extractor.Extract(text)

	if info.Title != "First Title" {
		t.Errorf("Expected first title to win, got %q", info.Title)
	}
}

func TestProjectExtractor_FieldsIndependent(t *testing.T) {
	extractor := NewProjectExtractor(mustCatalog(t))

	info := extractor.Extract("Program description: A summer research program for undergraduates.\n")
	if info.Title != "" {
		t.Errorf("Expected no title, got %q", info.Title)
	}
	if info.Description == "" {
		t.Error("Expected a description")
	}
}

func TestProjectExtractor_NoMatches(t *testing.T) {
	extractor := NewProjectExtractor(mustCatalog(t))

	info := extractor.Extract("Nothing resembling a header here.")
	if info.Title != "" || info.Description != "" {
		t.Errorf("Expected empty project info, got %+v", info)
	}
}
