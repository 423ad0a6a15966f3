package avatarforge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
)

// QueryField selects which avatar attribute a query inspects.
type QueryField string

const (
	ByRank      QueryField = "by_rank"
	ByAuthority QueryField = "by_authority"
	ByInfluence QueryField = "by_influence"
	ByRole      QueryField = "by_role"
	ByFlame     QueryField = "by_flame"
)

// QueryOp is a comparison operator applied against the selected field.
type QueryOp string

const (
	OpEquals   QueryOp = "equals"
	OpGreater  QueryOp = "greater"
	OpLess     QueryOp = "less"
	OpContains QueryOp = "contains"
)

var ErrBadQuery = errors.New("invalid avatar query")

// AvatarQuery is a single field/operator/value filter.
type AvatarQuery struct {
	Field    QueryField `json:"field"`
	Operator QueryOp    `json:"operator"`
	Value    string     `json:"value"`
}

// Numeric operators share a dispatch table; string and set fields handle
// their operators inline.
var numericOps = map[QueryOp]func(field, value float64) bool{
	OpEquals:  func(field, value float64) bool { return field == value },
	OpGreater: func(field, value float64) bool { return field > value },
	OpLess:    func(field, value float64) bool { return field < value },
}

// QueryAvatars loads the realm's avatars and filters them with a linear scan.
func (s *AvatarService) QueryAvatars(realmID string, q AvatarQuery) ([]Avatar, error) {
	match, err := buildMatcher(q)
	if err != nil {
		return nil, err
	}

	var avatars []Avatar
	if err := s.db.Scopes(realm.ForRealm(realmID)).Find(&avatars).Error; err != nil {
		return nil, err
	}

	result := make([]Avatar, 0, len(avatars))
	for _, av := range avatars {
		if match(&av) {
			result = append(result, av)
		}
	}
	return result, nil
}

func buildMatcher(q AvatarQuery) (func(*Avatar) bool, error) {
	switch q.Field {
	case ByRank:
		if q.Operator != OpEquals {
			return nil, fmt.Errorf("%w: rank only supports equals", ErrBadQuery)
		}
		want := Rank(strings.ToLower(q.Value))
		if _, ok := RankWeights[want]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownRank, q.Value)
		}
		return func(av *Avatar) bool { return av.Rank == want }, nil

	case ByRole:
		if q.Operator != OpContains {
			return nil, fmt.Errorf("%w: role only supports contains", ErrBadQuery)
		}
		want := Role(strings.ToLower(q.Value))
		if !knownRoles[want] {
			return nil, fmt.Errorf("%w: %v", ErrUnknownRole, q.Value)
		}
		return func(av *Avatar) bool { return av.HasRole(want) }, nil

	case ByAuthority, ByInfluence, ByFlame:
		cmp, ok := numericOps[q.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: operator %q not valid for numeric field", ErrBadQuery, q.Operator)
		}
		threshold, err := strconv.ParseFloat(q.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q is not numeric", ErrBadQuery, q.Value)
		}
		extract := numericExtractor(q.Field)
		return func(av *Avatar) bool { return cmp(extract(av), threshold) }, nil

	default:
		return nil, fmt.Errorf("%w: unknown field %q", ErrBadQuery, q.Field)
	}
}

func numericExtractor(field QueryField) func(*Avatar) float64 {
	switch field {
	case ByAuthority:
		return func(av *Avatar) float64 { return av.Authority }
	case ByInfluence:
		return func(av *Avatar) float64 { return av.CosmicInfluence }
	default:
		return func(av *Avatar) float64 { return av.FlameIntensity }
	}
}
