package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := NewDirectory(DemoAccounts("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	return d
}

func TestAuthenticate(t *testing.T) {
	d := newTestDirectory(t)

	p, err := d.Authenticate(" Policy@CPCB.gov.in", "123456")
	require.NoError(t, err)
	assert.Equal(t, RolePolicymaker, p.Role)
	assert.Equal(t, "policy@cpcb.gov.in", p.Email)

	_, err = d.Authenticate("policy@cpcb.gov.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = d.Authenticate("nobody@cpcb.gov.in", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewDirectoryRejectsUnknownRole(t *testing.T) {
	_, err := NewDirectory([]Account{{Email: "a@b", Password: "x", Role: "admin"}}, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestRoleMetadata(t *testing.T) {
	assert.Equal(t, "Field Officer", RoleFieldOfficer.Label())
	assert.Equal(t, "/map-view", RoleFieldOfficer.DefaultRoute())
	assert.Equal(t, "/policy-insights", RolePolicymaker.DefaultRoute())

	r, err := ParseRole("analyst")
	require.NoError(t, err)
	assert.Equal(t, RoleAnalyst, r)
}

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	token, err := iss.Issue(Principal{Email: "field@cpcb.gov.in", Role: RoleFieldOfficer})
	require.NoError(t, err)

	p, err := iss.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "field@cpcb.gov.in", p.Email)
	assert.Equal(t, RoleFieldOfficer, p.Role)
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	start := time.Now()
	iss.now = func() time.Time { return start }

	token, err := iss.Issue(Principal{Email: "a@cpcb.gov.in", Role: RoleAnalyst})
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	token, err := NewIssuer("other", time.Minute).Issue(Principal{Email: "a", Role: RoleAnalyst})
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewIssuer("secret", time.Minute).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
