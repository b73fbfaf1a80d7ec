package catalogue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNewItem() NewItem {
	return NewItem{
		Name:              "Kada",
		Type:              "bangles",
		Occasion:          "daily",
		Gender:            "male",
		Purity:            "22K",
		WeightMin:         25,
		WeightMax:         30,
		LabourCostPerGram: 450,
		MakingComplexity:  ComplexityMedium,
		Images:            []string{"https://img.example/kada.jpg"},
		Description:       "Solid kada",
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)), nil)

	id, err := svc.Create(context.Background(), validNewItem())
	require.NoError(t, err)
	assert.Len(t, id, 8)

	it, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/kada.jpg"}, []string(it.Images))
	assert.Equal(t, 450.0, it.LabourCostPerGram)
}

func TestService_CreateKeepsCallerID(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)), nil)

	in := validNewItem()
	in.ItemID = "KADA001"
	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "KADA001", id)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(NewRepo(openTestDB(t)), nil)

	cases := map[string]func(*NewItem){
		"blank name":      func(n *NewItem) { n.Name = "  " },
		"min above max":   func(n *NewItem) { n.WeightMin, n.WeightMax = 31, 30 },
		"negative weight": func(n *NewItem) { n.WeightMin = -1 },
		"negative labour": func(n *NewItem) { n.LabourCostPerGram = -5 },
		"missing purity":  func(n *NewItem) { n.Purity = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validNewItem()
			mutate(&in)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}

	items, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
