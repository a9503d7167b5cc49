package portal

import (
	"context"
	"testing"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fake struct {
	open    bool
	names   []string
	catalog []models.Question
}

func (f fake) GetConfig(ctx context.Context) (*models.EventConfig, error) {
	cfg := models.DefaultEventConfig()
	cfg.IsOpen = f.open
	return &cfg, nil
}

func (f fake) Names(ctx context.Context) ([]string, error) { return f.names, nil }

func (f fake) ActiveQuestions(ctx context.Context) ([]models.Question, error) { return f.catalog, nil }

func TestForm(t *testing.T) {
	global := test.Question("Kantin?", models.QuestionRating, true)
	ipa := test.Targeted("Lab?", models.QuestionText, "X-IPA-1")
	f := fake{open: true, names: []string{"X-IPA-1", "X-IPS-1"}, catalog: []models.Question{ipa, global}}
	svc := NewService(f, f, f)

	form, err := svc.Form(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"X-IPA-1", "X-IPS-1"}, form.Classes)
	assert.Empty(t, form.Questions)

	form, err = svc.Form(context.Background(), " x-ipa-1")
	require.NoError(t, err)
	assert.Equal(t, "X-IPA-1", form.ClassName)
	assert.Equal(t, []models.Question{ipa, global}, form.Questions)

	form, err = svc.Form(context.Background(), "X-IPS-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Question{global}, form.Questions)

	_, err = svc.Form(context.Background(), "XII-Z")
	assert.ErrorIs(t, err, errs.ErrUnknownClass)

	f.open = false
	form, err = NewService(f, f, f).Form(context.Background(), "X-IPA-1")
	require.NoError(t, err)
	assert.False(t, form.Config.IsOpen)
	assert.Empty(t, form.Questions)
}
