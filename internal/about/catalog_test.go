package about

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{TabSkills, TabEducation, TabCertifications}, c.IDs())
	assert.Equal(t, TabSkills, c.Initial())
	assert.Equal(t, 3, c.Len())

	for _, e := range c.Entries() {
		assert.NotEmpty(t, e.Title, e.ID)
		assert.True(t, e.Content.IsBulletList(), e.ID)
		assert.NotEmpty(t, e.Content.Items, e.ID)
	}
}

func TestLookupIsStable(t *testing.T) {
	c := Default()
	want := []string{"Master of Electrical Engineering and IT", "Technische Hochschule Deggendorf"}

	for i := 0; i < 3; i++ {
		e, err := c.Lookup(TabEducation)
		require.NoError(t, err)
		assert.Equal(t, "Education", e.Title)
		assert.Equal(t, want, e.Content.Items)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	c := Default()

	e, err := c.Lookup(TabSkills)
	require.NoError(t, err)
	e.Content.Items[0] = "COBOL"
	e.Title = "Hobbies"

	entries := c.Entries()
	entries[0].Content.Items[1] = "Punch cards"

	again, err := c.Lookup(TabSkills)
	require.NoError(t, err)
	assert.Equal(t, "Skills", again.Title)
	assert.Equal(t, "AWS Cloud Infrastructure", again.Content.Items[0])
	assert.Equal(t, "CI/CD Pipelines", again.Content.Items[1])
}

func TestLookupUnknown(t *testing.T) {
	_, err := Default().Lookup("hobbies")
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.False(t, Default().Contains("hobbies"))
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{name: "empty", wantErr: ErrEmptyCatalog},
		{
			name:    "empty id",
			entries: []Entry{{ID: "", Title: "Nothing"}},
			wantErr: ErrEmptyID,
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: "a", Title: "A"},
				{ID: "a", Title: "Again"},
			},
			wantErr: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.entries...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCatalogCopiesInput(t *testing.T) {
	items := []string{"one", "two"}
	c, err := NewCatalog(Entry{ID: "list", Title: "List", Content: Bullets(items...)})
	require.NoError(t, err)

	items[0] = "changed"

	e, err := c.Lookup("list")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, e.Content.Items)
}

func TestMustCatalogPanics(t *testing.T) {
	assert.Panics(t, func() { MustCatalog() })
}

func TestContentKind(t *testing.T) {
	assert.Equal(t, "bullet_list", KindBulletList.String())
	assert.Equal(t, "rich_text", KindRichText.String())
	assert.Equal(t, "kind(7)", ContentKind(7).String())

	rt := RichText("hello")
	assert.False(t, rt.IsBulletList())
	assert.Equal(t, "hello", rt.Text)
}

func TestContentKindJSON(t *testing.T) {
	data, err := json.Marshal(Bullets("Kubernetes"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"bullet_list","items":["Kubernetes"]}`, string(data))

	var c Content
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"rich_text","text":"hi"}`), &c))
	assert.Equal(t, RichText("hi"), c)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"carousel"}`), &c))

	_, err = json.Marshal(Content{Kind: ContentKind(9)})
	assert.Error(t, err)
}
