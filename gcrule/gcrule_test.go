package gcrule

import (
	"testing"
	"time"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datastax/bigtable-admin-apis/wire"
)

func mustMaxAge(t *testing.T, d time.Duration) *adminpb.GcRule {
	t.Helper()
	rule, err := MaxAge(d)
	require.NoError(t, err)
	return rule
}

func TestSimpleRules(t *testing.T) {
	assert.Equal(t, int32(3), MaxVersions(3).GetMaxNumVersions())
	assert.Equal(t, time.Millisecond, mustMaxAge(t, time.Millisecond).GetMaxAge().AsDuration())
}

func TestMaxAgeKeepsSubMillisecondPrecision(t *testing.T) {
	assert.Equal(t, 90*time.Second+time.Microsecond, mustMaxAge(t, 90*time.Second+time.Microsecond).GetMaxAge().AsDuration())
	assert.Equal(t, 1500*time.Microsecond, mustMaxAge(t, 1500*time.Microsecond).GetMaxAge().AsDuration())

	for _, d := range []time.Duration{0, -time.Second, time.Microsecond, 999 * time.Microsecond} {
		rule, err := MaxAge(d)
		assert.Nil(t, rule, d.String())
		assert.Equal(t, ErrInvalidMaxAge, err, d.String())
	}
}

func TestCombinedRules(t *testing.T) {
	union, err := Union(MaxVersions(1), mustMaxAge(t, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "union", wire.Which(union, "rule"))
	assert.Len(t, union.GetUnion().GetRules(), 2)

	intersection, err := Intersection(MaxVersions(1), union)
	require.NoError(t, err)
	assert.Equal(t, "intersection", wire.Which(intersection, "rule"))
	assert.Equal(t, "(versions() > 1 && (versions() > 1 || age() > 1h0m0s))", String(intersection))

	_, err = Union()
	assert.Equal(t, ErrNoRules, err)
	_, err = Union(MaxVersions(1))
	assert.Equal(t, ErrSingleUnion, err)
	_, err = Intersection(MaxVersions(1))
	assert.Equal(t, ErrSingleIntersect, err)
	_, err = Intersection(MaxVersions(1), nil)
	assert.Equal(t, ErrNilRule, err)
}

func TestFromPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   string
		err    error
	}{
		{"versions", Policy{Versions: 2}, "versions() > 2", nil},
		{"age", Policy{Age: 24 * time.Hour}, "age() > 24h0m0s", nil},
		{"intersection", Policy{Age: time.Hour, Versions: 3}, "(age() > 1h0m0s && versions() > 3)", nil},
		{"union", Policy{Age: time.Hour, Versions: 3, Union: true}, "(age() > 1h0m0s || versions() > 3)", nil},
		{"nested", Policy{Versions: 1, Rule: &Policy{Age: time.Minute, Versions: 5, Union: true}},
			"(versions() > 1 && (age() > 1m0s || versions() > 5))", nil},
		{"nested only", Policy{Rule: &Policy{Versions: 4}}, "versions() > 4", nil},
		{"empty", Policy{}, "", ErrNoRules},
		{"single union", Policy{Versions: 1, Union: true}, "", ErrSingleUnion},
		{"negative age", Policy{Age: -time.Second}, "", ErrInvalidMaxAge},
		{"sub millisecond age", Policy{Age: 500 * time.Microsecond, Versions: 1}, "", ErrInvalidMaxAge},
		{"negative versions", Policy{Versions: -1}, "", ErrInvalidVersions},
		{"invalid nested", Policy{Versions: 1, Rule: &Policy{}}, "", ErrNoRules},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := FromPolicy(tt.policy)
			if tt.err != nil {
				assert.Equal(t, tt.err, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, String(rule))
		})
	}
}

func TestToPolicy(t *testing.T) {
	policy := Policy{Age: time.Hour, Versions: 2, Rule: &Policy{Versions: 7, Age: time.Minute, Union: true}}
	rule, err := FromPolicy(policy)
	require.NoError(t, err)

	back, err := ToPolicy(rule)
	require.NoError(t, err)
	assert.Equal(t, policy, back)

	twoUnions, err := Intersection(
		&adminpb.GcRule{Rule: &adminpb.GcRule_Union_{Union: &adminpb.GcRule_Union{}}},
		&adminpb.GcRule{Rule: &adminpb.GcRule_Union_{Union: &adminpb.GcRule_Union{}}},
	)
	require.NoError(t, err)
	_, err = ToPolicy(twoUnions)
	assert.Error(t, err)

	_, err = ToPolicy(&adminpb.GcRule{})
	assert.Equal(t, ErrNoRules, err)
}

func TestStringWithoutRule(t *testing.T) {
	assert.Equal(t, "never", String(nil))
	assert.Equal(t, "never", String(&adminpb.GcRule{}))
}
