package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/lunai-strategist/internal/services"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	industry, size, goals = "", "", nil
	noSynergy, explain, jsonOutput, catalogFile = false, false, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := executeContext(context.Background(), args)
	return out.String(), err
}

func TestRecommend_Text(t *testing.T) {
	out, err := run(t, "--industry", "creative", "--size", "small", "--explain", "We need a new logo and brand identity")
	require.NoError(t, err)

	assert.Contains(t, out, "Your Strategic Constellation")
	assert.Contains(t, out, "1. ⭐ Strategic Branding Excellence")
	assert.Contains(t, out, "Based on your focus on 'brand' and 'identity'")
	assert.Contains(t, out, "matched: brand, identity, logo")
}

func TestRecommend_JSON(t *testing.T) {
	out, err := run(t, "-i", "politics", "-s", "large", "--json", "election", "campaign", "voter", "outreach")
	require.NoError(t, err)

	var rec services.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	require.Len(t, rec.Results, 2)
	assert.Equal(t, "political", rec.Results[0].Key)
}

func TestRecommend_Fallback(t *testing.T) {
	out, err := run(t, "-i", "tech", "-s", "small", "hello world")
	require.NoError(t, err)
	assert.Contains(t, out, "your needs are unique")
}

func TestRecommend_Validation(t *testing.T) {
	_, err := run(t, "--industry", "tech", "website")
	require.Error(t, err)
	assert.Contains(t, err.Error(), services.MsgSelectIndustryAndSize)

	_, err = run(t, "--industry", "tech", "--size", "small")
	require.Error(t, err)
	assert.Contains(t, err.Error(), services.MsgDescribeChallenges)
}

func TestCatalog_ExportThenValidate(t *testing.T) {
	out, err := run(t, "catalog", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "key: branding")

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))

	out, err = run(t, "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(6 services)")

	out, err = run(t, "--catalog", path, "-i", "tech", "-s", "medium", "website")
	require.NoError(t, err)
	assert.Contains(t, out, "Digital Web Excellence")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("services: [{key: ''}]"), 0o600))
	out, err = run(t, "catalog", "validate", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "FAIL")
}
