package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniformal/unicheck/internal/cli"
)

func TestBindEnvVars(t *testing.T) {
	tests := []struct {
		name     string
		envName  string
		envValue string
		flagName string
		want     string
	}{
		{
			name:     "log level from environment",
			envName:  "UNICHECK_LOG_LEVEL",
			envValue: "debug",
			flagName: "log-level",
			want:     "debug",
		},
		{
			name:     "rules path from environment",
			envName:  "UNICHECK_RULES",
			envValue: "/tmp/unicheck.rules.yaml",
			flagName: "rules",
			want:     "/tmp/unicheck.rules.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envName, tt.envValue)

			cmd := cli.NewRootCmd()

			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				flag = cmd.PersistentFlags().Lookup(tt.flagName)
			}

			require.NotNil(t, flag)
			assert.Equal(t, tt.want, flag.Value.String())
		})
	}
}

func TestFlagUsageMentionsEnvVar(t *testing.T) {
	cmd := cli.NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "$UNICHECK_LOG_LEVEL")

	flag = cmd.Flags().Lookup("rules")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "$UNICHECK_RULES")
}
