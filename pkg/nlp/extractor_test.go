package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCrops_English(t *testing.T) {
	assert.Equal(t, []string{"Wheat"}, ExtractCrops("price of wheat in Punjab"))
	assert.Equal(t, []string{"Tomato"}, ExtractCrops("TOMATO rates"))
}

func TestExtractCrops_WholeWordOnly(t *testing.T) {
	// "rice" inside "prices" must not count as a crop
	assert.Empty(t, ExtractCrops("show prices"))
	assert.Equal(t, []string{"Rice"}, ExtractCrops("rice prices"))
}

func TestExtractCrops_Hindi(t *testing.T) {
	assert.Equal(t, []string{"Wheat"}, ExtractCrops("गेहूं का भाव"))
	assert.Equal(t, []string{"Paddy"}, ExtractCrops("धान की कीमत"))
	// synonym collapses to the same canonical name
	assert.Equal(t, []string{"Paddy"}, ExtractCrops("चावल"))
}

func TestExtractCrops_DeclarationOrder(t *testing.T) {
	crops := ExtractCrops("wheat and rice and cotton")
	assert.Equal(t, []string{"Wheat", "Rice", "Cotton"}, crops)
}

func TestExtractLocations_English(t *testing.T) {
	assert.Equal(t, []string{"Punjab"}, ExtractLocations("weather in Punjab"))
	assert.Equal(t, []string{"Ludhiana", "Amritsar"}, ExtractLocations("compare prices in Ludhiana and Amritsar"))
}

func TestExtractLocations_StatesBeforeCities(t *testing.T) {
	locations := ExtractLocations("Ludhiana in Punjab")
	assert.Equal(t, []string{"Punjab", "Ludhiana"}, locations)
}

func TestExtractLocations_Hindi(t *testing.T) {
	assert.Equal(t, []string{"Punjab"}, ExtractLocations("पंजाब में मौसम"))
	assert.Equal(t, []string{"Ludhiana"}, ExtractLocations("लुधियाना मंडी"))
}

func TestExtractTimeReference(t *testing.T) {
	assert.Equal(t, "tomorrow", ExtractTimeReference("will it rain tomorrow"))
	assert.Equal(t, "day after tomorrow", ExtractTimeReference("rain day after tomorrow"))
	assert.Equal(t, "today", ExtractTimeReference("weather today please"))
	assert.Equal(t, "", ExtractTimeReference("weather"))
}

func TestExtractTimeReference_Hindi(t *testing.T) {
	assert.Equal(t, "tomorrow", ExtractTimeReference("कल मौसम"))
	assert.Equal(t, "day after tomorrow", ExtractTimeReference("परसों बारिश"))
}

func TestExtractDiseases(t *testing.T) {
	diseases := ExtractDiseases("how to treat paddy blast")
	assert.Equal(t, []string{"paddy blast", "blast"}, diseases)

	assert.Equal(t, []string{"late blight", "blight"}, ExtractDiseases("late blight on potato"))
	assert.Empty(t, ExtractDiseases("weather tomorrow"))
}

func TestExtractDiseases_Hindi(t *testing.T) {
	assert.Equal(t, []string{"झुलसा"}, ExtractDiseases("झुलसा का इलाज"))
}

func TestExtractEntities_Combined(t *testing.T) {
	entities := ExtractEntities("price of wheat in Punjab tomorrow")
	assert.Equal(t, []string{"Wheat"}, entities.Crops)
	assert.Equal(t, []string{"Punjab"}, entities.Locations)
	assert.Equal(t, "tomorrow", entities.TimeRef)
	assert.Empty(t, entities.Diseases)
	assert.False(t, entities.Empty())
}

func TestExtractEntities_Empty(t *testing.T) {
	assert.True(t, ExtractEntities("hello").Empty())
}
