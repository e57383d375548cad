package forms_test

import (
	"context"
	"errors"
	"testing"

	"ticket-store/internal/forms"
	"ticket-store/internal/logger"
	"ticket-store/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	form         *models.HubSpotForm
	shouldFail   bool
	fetchedForms []string
}

func (f *fakeFetcher) FetchForm(ctx context.Context, formID string) (*models.HubSpotForm, error) {
	f.fetchedForms = append(f.fetchedForms, formID)
	if f.shouldFail {
		return nil, errors.New("simulated forms API failure")
	}
	return f.form, nil
}

var fallbackOptions = []models.FormOption{
	{Value: "1-10", Label: "1-10"},
	{Value: "11-50", Label: "11-50"},
}

func newService(fetcher forms.FormFetcher) *forms.Service {
	return forms.NewService(fetcher, nil, logger.NewLogger(), "form-123", 0)
}

func TestGetFieldOptionsFromProvider(t *testing.T) {
	fetcher := &fakeFetcher{form: &models.HubSpotForm{
		Fields: []models.HubSpotField{
			{
				Name: "company_size",
				Options: []models.HubSpotOption{
					{Value: "1-10", Label: "1 to 10 people"},
					{Value: "11-50", Label: "11 to 50 people"},
				},
			},
		},
	}}
	svc := newService(fetcher)

	resp := svc.GetFieldOptions(context.Background(), "company_size", fallbackOptions)

	assert.Equal(t, forms.SourceData, resp.Source)
	require.Len(t, resp.Options, 2)
	assert.Equal(t, "1 to 10 people", resp.Options[0].Label)
	assert.Equal(t, []string{"form-123"}, fetcher.fetchedForms)
}

func TestGetFieldOptionsFallsBackOnFetchError(t *testing.T) {
	svc := newService(&fakeFetcher{shouldFail: true})

	resp := svc.GetFieldOptions(context.Background(), "company_size", fallbackOptions)

	assert.Equal(t, forms.SourceFallback, resp.Source)
	assert.Equal(t, fallbackOptions, resp.Options)
}

func TestGetFieldOptionsFallsBackOnMissingField(t *testing.T) {
	fetcher := &fakeFetcher{form: &models.HubSpotForm{
		Fields: []models.HubSpotField{{Name: "job_title_position"}},
	}}
	svc := newService(fetcher)

	resp := svc.GetFieldOptions(context.Background(), "company_size", fallbackOptions)

	assert.Equal(t, forms.SourceFallback, resp.Source)
	assert.Equal(t, fallbackOptions, resp.Options)
}

func TestExtractFieldOptionsSearchesFieldGroups(t *testing.T) {
	form := &models.HubSpotForm{
		FieldGroups: []models.HubSpotFieldGroup{
			{Fields: []models.HubSpotField{{Name: "other_field"}}},
			{Fields: []models.HubSpotField{
				{
					Name: "company_focus",
					Options: []models.HubSpotOption{
						{Value: "defi", Label: "DeFi"},
						{Value: "gaming", Label: "Gaming"},
					},
				},
			}},
		},
	}

	options := forms.ExtractFieldOptions(form, "company_focus")

	require.Len(t, options, 2)
	assert.Equal(t, "defi", options[0].Value)
	assert.Equal(t, "Gaming", options[1].Label)
}

func TestExtractFieldOptionsLabelFallsBackToValue(t *testing.T) {
	form := &models.HubSpotForm{
		Fields: []models.HubSpotField{
			{
				Name: "company_size",
				Options: []models.HubSpotOption{
					{Value: "51-200"},
					{Value: "", Label: "orphan label"},
				},
			},
		},
	}

	options := forms.ExtractFieldOptions(form, "company_size")

	// The valueless option is dropped, the labelless one keeps its value.
	require.Len(t, options, 1)
	assert.Equal(t, models.FormOption{Value: "51-200", Label: "51-200"}, options[0])
}
