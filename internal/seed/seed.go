// Package seed loads the embedded starter profile and catalogue.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/suPer8Hu/goldsmith-storefront/internal/catalogue"
	"github.com/suPer8Hu/goldsmith-storefront/internal/logging"
	"github.com/suPer8Hu/goldsmith-storefront/internal/profile"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultData []byte

type seedProfile struct {
	Name              string   `yaml:"name"`
	YearsOfExperience int      `yaml:"years_of_experience"`
	Specializations   []string `yaml:"specializations"`
	Certifications    []string `yaml:"certifications"`
	Description       string   `yaml:"description"`
	Location          string   `yaml:"location"`
	ContactPhone      string   `yaml:"contact_phone"`
	ContactEmail      string   `yaml:"contact_email"`
	GalleryImages     []string `yaml:"gallery_images"`
}

type seedItem struct {
	ItemID            string   `yaml:"item_id"`
	Name              string   `yaml:"name"`
	Type              string   `yaml:"type"`
	Occasion          string   `yaml:"occasion"`
	Gender            string   `yaml:"gender"`
	Purity            string   `yaml:"purity"`
	WeightMin         float64  `yaml:"weight_min"`
	WeightMax         float64  `yaml:"weight_max"`
	LabourCostPerGram float64  `yaml:"labour_cost_per_gram"`
	MakingComplexity  string   `yaml:"making_complexity"`
	Images            []string `yaml:"images"`
	Description       string   `yaml:"description"`
	IsFeatured        bool     `yaml:"is_featured"`
}

type Data struct {
	Profile seedProfile `yaml:"profile"`
	Items   []seedItem  `yaml:"items"`
}

// Result reports what Run inserted.
type Result struct {
	Profile bool
	Items   int
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &d, nil
}

func Default() (*Data, error) {
	return Parse(defaultData)
}

// Run inserts the profile when absent and the items when the catalogue is
// empty. Existing data is never touched.
func Run(ctx context.Context, db *gorm.DB, d *Data, log *zap.Logger) (Result, error) {
	log = logging.OrNop(log)
	var res Result

	profiles := profile.NewRepo(db)
	exists, err := profiles.Exists(ctx)
	if err != nil {
		return res, fmt.Errorf("check profile: %w", err)
	}
	if !exists {
		p := d.Profile
		if err := profiles.Put(ctx, &profile.Profile{
			Name:              p.Name,
			YearsOfExperience: p.YearsOfExperience,
			Specializations:   p.Specializations,
			Certifications:    p.Certifications,
			Description:       p.Description,
			Location:          p.Location,
			ContactPhone:      p.ContactPhone,
			ContactEmail:      p.ContactEmail,
			GalleryImages:     p.GalleryImages,
		}); err != nil {
			return res, fmt.Errorf("seed profile: %w", err)
		}
		res.Profile = true
	}

	items := catalogue.NewRepo(db)
	n, err := items.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count catalogue: %w", err)
	}
	if n == 0 {
		for _, it := range d.Items {
			if err := items.Create(ctx, &catalogue.Item{
				ItemID:            it.ItemID,
				Name:              it.Name,
				Type:              it.Type,
				Occasion:          it.Occasion,
				Gender:            it.Gender,
				Purity:            it.Purity,
				WeightMin:         it.WeightMin,
				WeightMax:         it.WeightMax,
				LabourCostPerGram: it.LabourCostPerGram,
				MakingComplexity:  it.MakingComplexity,
				Images:            it.Images,
				Description:       it.Description,
				IsFeatured:        it.IsFeatured,
			}); err != nil {
				return res, fmt.Errorf("seed item %s: %w", it.ItemID, err)
			}
			res.Items++
		}
	}

	log.Info("seed finished", zap.Bool("profile", res.Profile), zap.Int("items", res.Items))
	return res, nil
}
