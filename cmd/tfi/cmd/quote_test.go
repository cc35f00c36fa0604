package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/confio/tfi/x/pair/types"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteSwap(t *testing.T) {
	out, err := runCmd(t, "quote", "swap", "2000", "6000", "1000")
	require.NoError(t, err)
	require.Equal(t, "return_amount: 1994\nspread_amount: 1000\ncommission_amount: 6\n", out)
}

func TestQuoteSwapJSON(t *testing.T) {
	out, err := runCmd(t, "quote", "swap", "2000", "6000", "1000", "-o", "json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, map[string]string{
		"return_amount":     "1994",
		"spread_amount":     "1000",
		"commission_amount": "6",
	}, got)
}

func TestQuoteReverse(t *testing.T) {
	out, err := runCmd(t, "quote", "reverse", "2000", "6000", "1994")
	require.NoError(t, err)
	require.Contains(t, out, "offer_amount: 999\n")
}

func TestQuoteCommissionFromEnv(t *testing.T) {
	t.Setenv("TFI_COMMISSION", "0")
	out, err := runCmd(t, "quote", "swap", "1000000", "1000000", "1000")
	require.NoError(t, err)
	require.Contains(t, out, "commission_amount: 0\n")
}

func TestQuoteCommissionFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tfi.yaml")
	require.NoError(t, os.WriteFile(file, []byte("commission: 0\noutput: json\n"), 0o644))

	out, err := runCmd(t, "--config", file, "quote", "swap", "1000000", "1000000", "1000")
	require.NoError(t, err)
	require.JSONEq(t, `{"return_amount":"1000","spread_amount":"0","commission_amount":"0"}`, out)
}

func TestQuoteProvide(t *testing.T) {
	out, err := runCmd(t, "quote", "provide", "2000", "6000")
	require.NoError(t, err)
	require.Equal(t, "share: 3464\n", out)

	out, err = runCmd(t, "quote", "provide", "1000", "3000", "--pools", "2000,6000", "--total-share", "3464")
	require.NoError(t, err)
	require.Equal(t, "share: 1732\n", out)
}

func TestQuoteProvideSlippage(t *testing.T) {
	_, err := runCmd(t, "quote", "provide", "1000", "4000",
		"--pools", "2000,6000", "--total-share", "3464", "--slippage-tolerance", "0.01")
	require.ErrorIs(t, err, types.ErrMaxSlippageExceeded)

	_, err = runCmd(t, "quote", "provide", "1000", "3000", "--pools", "2000,6000")
	require.NoError(t, err, "first deposit ignores the pools flag ratio")

	_, err = runCmd(t, "quote", "provide", "1000", "3000", "--pools", "2000")
	require.Error(t, err)
}

func TestQuoteWithdraw(t *testing.T) {
	out, err := runCmd(t, "quote", "withdraw", "1732", "5196", "3000", "9000")
	require.NoError(t, err)
	require.Equal(t, "refund_0: 1000\nrefund_1: 3000\n", out)

	_, err = runCmd(t, "quote", "withdraw", "6000", "5196", "3000", "9000")
	require.ErrorIs(t, err, types.ErrInvalidShares)
}

func TestQuoteRejectsBadInput(t *testing.T) {
	_, err := runCmd(t, "quote", "swap", "0", "6000", "1000")
	require.ErrorIs(t, err, types.ErrDivideByZero)

	_, err = runCmd(t, "quote", "swap", "abc", "6000", "1000")
	require.Error(t, err)

	_, err = runCmd(t, "quote", "swap", "--", "-5", "6000", "1000")
	require.ErrorIs(t, err, types.ErrUnderflow)

	_, err = runCmd(t, "--commission", "1", "quote", "swap", "2000", "6000", "1000")
	require.ErrorIs(t, err, types.ErrInvalidCommission)

	_, err = runCmd(t, "--output", "xml", "quote", "swap", "2000", "6000", "1000")
	require.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	out, err := runCmd(t, "--commission", "0.01", "config")
	require.NoError(t, err)
	require.Contains(t, out, "commission: \"0.010000000000000000\"")
	require.Contains(t, out, "output: text")
	require.Contains(t, out, "log-level: info")
}

func TestServeConfigFromFlags(t *testing.T) {
	cmd := NewServeCmd()
	require.NoError(t, cmd.Flags().Set(FlagPort, "9999"))
	require.NoError(t, cmd.Flags().Set(FlagCORSOrigins, "https://a.example,https://b.example"))

	cfg := Config{Commission: types.DefaultCommissionRate()}
	serverCfg, err := serverConfig(cmd, cfg)
	require.NoError(t, err)
	require.Equal(t, "9999", serverCfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, serverCfg.CORSOrigins)
	require.True(t, serverCfg.Commission.Equal(types.DefaultCommissionRate()))

	require.NoError(t, cmd.Flags().Set(FlagRateLimit, "0"))
	_, err = serverConfig(cmd, cfg)
	require.Error(t, err)
}
