package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if out.String() != "Name?\n> " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Password", &out)
	assert.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments(preferences.CategoryAppearance,
		[]string{"theme=dark", "compactMode=on", "animations=false", "customPrimaryColor=none"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"theme":              "dark",
		"compactMode":        true,
		"animations":         false,
		"customPrimaryColor": nil,
	}, got)

	_, err = parseAssignments(preferences.CategoryAppearance, []string{"theme"})
	assert.Error(t, err)
	_, err = parseAssignments(preferences.CategoryAppearance, []string{"=dark"})
	assert.Error(t, err)
}

func TestParseAssignments_KeywordsOnlyForTypedMembers(t *testing.T) {
	got, err := parseAssignments(preferences.CategoryProfile,
		[]string{"firstName=None", "lastName=True", "profilePicture=null"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"firstName":      "None",
		"lastName":       "True",
		"profilePicture": nil,
	}, got)

	got, err = parseAssignments(preferences.CategoryNotifications, []string{"budgetAlerts=OFF", "reportEmails=none"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"budgetAlerts": false, "reportEmails": "none"}, got)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"help", []string{"help"}},
		{"  appearance  theme=dark ", []string{"appearance", "theme=dark"}},
		{`profile firstName="Ann Marie" lastName=Lee`, []string{"profile", "firstName=Ann Marie", "lastName=Lee"}},
		{`profile phone=""`, []string{"profile", "phone="}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitArgs(tt.in), tt.in)
	}
}

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
