package helpline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCategory(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	dir := t.TempDir()
	writeCategory(t, dir, "1-emergency.json", `{
		"title": "Emergency Services",
		"numbers": [
			{"name": "Police Emergency", "number": "100", "description": "24/7 Police assistance"},
			{"name": "Fire Brigade", "number": "101", "description": "Fire emergency & rescue"}
		]
	}`)
	writeCategory(t, dir, "2-municipal.json", `{
		"title": "Municipal Services",
		"numbers": [
			{"name": "Water Supply", "number": "1916", "description": "Water related issues"}
		]
	}`)
	writeCategory(t, dir, "notes.txt", "ignored")

	d, err := NewDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNewDirectory_LoadsInFileOrder(t *testing.T) {
	d := testDirectory(t)

	cats := d.Categories()
	assert.Len(t, cats, 2)
	assert.Equal(t, "Emergency Services", cats[0].Title)
	assert.Equal(t, "Municipal Services", cats[1].Title)
	assert.Len(t, cats[0].Numbers, 2)
}

func TestNewDirectory_MissingDir(t *testing.T) {
	_, err := NewDirectory("/no/such/dir")
	assert.Error(t, err)
}

func TestNewDirectory_BadJSON(t *testing.T) {
	dir := t.TempDir()
	writeCategory(t, dir, "bad.json", "{")

	_, err := NewDirectory(dir)
	assert.Error(t, err)
}

func TestSearch_MatchesNameNumberAndDescription(t *testing.T) {
	d := testDirectory(t)

	byName := d.Search("police")
	assert.Len(t, byName, 1)
	assert.Equal(t, "Police Emergency", byName[0].Numbers[0].Name)

	byNumber := d.Search("1916")
	assert.Len(t, byNumber, 1)
	assert.Equal(t, "Municipal Services", byNumber[0].Title)

	byDescription := d.Search("rescue")
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "Fire Brigade", byDescription[0].Numbers[0].Name)
}

func TestSearch_DropsEmptyCategories(t *testing.T) {
	d := testDirectory(t)

	got := d.Search("water")
	assert.Len(t, got, 1)
	assert.Equal(t, "Municipal Services", got[0].Title)
}

func TestSearch_EmptyTermReturnsAll(t *testing.T) {
	d := testDirectory(t)
	assert.Len(t, d.Search("  "), 2)
}
