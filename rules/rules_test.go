package rules

import (
	"testing"

	"github.com/sage-x-project/causalproof/model"
	"github.com/stretchr/testify/assert"
)

func link(hash string, action model.ActionType, ts int64, pred *string) model.ChainLink {
	return model.ChainLink{EventHash: hash, ActionType: action, Timestamp: ts, PredecessorHash: pred}
}

func TestEmptyChainAlwaysValid(t *testing.T) {
	s := StrictRequestResponse()
	report := s.Validate(nil)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Violations)
}

func TestRequestMustPrecedeResponse(t *testing.T) {
	s := Set{RequestMustPrecedeResponse: true}

	chain := []model.ChainLink{
		link("0x01", model.ActionResponse, 1, nil),
	}
	report := s.Validate(chain)
	assert.False(t, report.Valid)
	assert.Len(t, report.Violations, 1)

	h1 := "0x01"
	chain = []model.ChainLink{
		link("0x01", model.ActionRequest, 1, nil),
		link("0x02", model.ActionResponse, 2, &h1),
	}
	report = s.Validate(chain)
	assert.True(t, report.Valid)
}

func TestMaxTimeGap(t *testing.T) {
	s := Set{MaxTimeGapMs: 100}
	h1 := "0x01"
	chain := []model.ChainLink{
		link("0x01", model.ActionRequest, 0, nil),
		link("0x02", model.ActionResponse, 500, &h1),
	}
	report := s.Validate(chain)
	assert.False(t, report.Valid)
}

func TestRequiredAndForbiddenActionTypes(t *testing.T) {
	s := Set{
		RequiredActionTypes:  []model.ActionType{model.ActionStateTransition},
		ForbiddenActionTypes: []model.ActionType{model.ActionError},
	}
	chain := []model.ChainLink{
		link("0x01", model.ActionError, 0, nil),
	}
	report := s.Validate(chain)
	assert.False(t, report.Valid)
	assert.Len(t, report.Violations, 2)
}

func TestRequireDirectCausality(t *testing.T) {
	s := Set{RequireDirectCausality: true}
	chain := []model.ChainLink{
		link("0x01", model.ActionRequest, 0, nil),
		link("0x02", model.ActionResponse, 1, nil), // missing predecessor link
	}
	report := s.Validate(chain)
	assert.False(t, report.Valid)
}

func TestMinVerificationDepth(t *testing.T) {
	s := Set{MinVerificationDepth: 3}
	chain := []model.ChainLink{
		link("0x01", model.ActionRequest, 0, nil),
	}
	report := s.Validate(chain)
	assert.False(t, report.Valid)
}

func TestStrictRequestResponsePresetPasses(t *testing.T) {
	h1 := "0x01"
	chain := []model.ChainLink{
		link("0x01", model.ActionRequest, 0, nil),
		link("0x02", model.ActionResponse, 10, &h1),
	}
	report := StrictRequestResponse().Validate(chain)
	assert.True(t, report.Valid)
}
