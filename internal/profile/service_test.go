package profile

import (
	"context"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(gormsqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Profile{}, &Article{}))
	return db
}

func sampleProfile(name string) Profile {
	return Profile{
		Name:              name,
		YearsOfExperience: 35,
		Specializations:   []string{"Temple Jewellery"},
		Certifications:    []string{"BIS Certified"},
		Description:       "Three generations",
		Location:          "Chennai",
		ContactPhone:      "+91 98765 43210",
		ContactEmail:      "contact@heritagegold.in",
	}
}

func TestGet_NotFoundWhenAbsent(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)), nil)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_UpsertsSingleton(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(NewRepo(db), nil)

	require.NoError(t, svc.Update(context.Background(), sampleProfile("First")))
	second := sampleProfile("Second")
	second.GalleryImages = []string{"https://img.example/a.jpg"}
	second.Certifications = nil
	require.NoError(t, svc.Update(context.Background(), second))

	var n int64
	require.NoError(t, db.Model(&Profile{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	p, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Second", p.Name)
	assert.Equal(t, []string{"https://img.example/a.jpg"}, []string(p.GalleryImages))
	assert.Empty(t, p.Certifications, "replace is wholesale")
}

func TestArticles_DefaultsWhenEmpty(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)), nil)

	got := svc.Articles(context.Background())
	require.Len(t, got, 4)
	assert.Equal(t, []string{"purity", "hallmark", "making-charges", "916-meaning"},
		[]string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})

	got[0].Title = "mutated"
	again := svc.Articles(context.Background())
	assert.Equal(t, "Understanding Gold Purity", again[0].Title)
}

func TestArticles_StoredReplaceDefaults(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	require.NoError(t, repo.PutArticle(context.Background(), &Article{ID: "care", Title: "Caring for Gold", Icon: "sparkles"}))

	got := NewService(repo, nil).Articles(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "care", got[0].ID)
}
