package valuation

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesim/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testProperty() *models.Property {
	p := models.NewProperty(
		88_420_000, 5_040_000, "Osaka",
		time.Date(1998, time.June, 1, 0, 0, 0, 0, time.UTC),
		models.StructureWooden, models.LandRightOwnerShip,
		130, 120, 3, 6, 60, 200,
	)
	p.RoadPrice = 205_000
	return p
}

func shellProvider(script string) *ScriptProvider {
	return NewCommandProvider("sh", []string{"-c", script}, 5*time.Second, quietLogger())
}

func TestStaticProvider(t *testing.T) {
	p := testProperty()
	require.NoError(t, p.RunValuation(context.Background(), NewStaticProvider()))

	assert.Equal(t, 18_000_000, p.BuildingAppraisedValue)
	assert.Equal(t, 26_650_000, p.LandAppraisedValue)
	assert.Equal(t, 44_650_000, p.EstimatedPrice)
	assert.Equal(t, models.Valuated, p.Valuation)
}

func TestScriptProvider_Appraisal(t *testing.T) {
	provider := shellProvider(`cat > /dev/null
echo '{"type":"log","data":"looking up"}'
echo '{"type":"appraisal","data":{"building_value":1000,"land_value":2000,"total_value":3000}}'`)

	appraisal, err := provider.Estimate(context.Background(), testProperty())
	require.NoError(t, err)
	assert.Equal(t, models.Appraisal{BuildingValue: 1000, LandValue: 2000, TotalValue: 3000}, appraisal)
}

func TestScriptProvider_ReceivesProperty(t *testing.T) {
	// Echo the road price back as the land value
	provider := shellProvider(`input=$(cat)
case "$input" in
*'"road_price":205000'*) echo '{"type":"appraisal","data":{"building_value":1,"land_value":205000,"total_value":205001}}' ;;
*) echo '{"type":"error","data":{"message":"unexpected input"}}' ;;
esac`)

	appraisal, err := provider.Estimate(context.Background(), testProperty())
	require.NoError(t, err)
	assert.Equal(t, 205_000, appraisal.LandValue)
}

func TestScriptProvider_Errors(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		contains string
	}{
		{
			name:     "Script error message",
			script:   `cat > /dev/null; echo '{"type":"error","data":{"message":"site unavailable"}}'`,
			contains: "site unavailable",
		},
		{
			name:     "Non-zero exit",
			script:   `cat > /dev/null; exit 3`,
			contains: "valuation script failed",
		},
		{
			name:     "No appraisal",
			script:   `cat > /dev/null; echo 'not json'`,
			contains: ErrEmptyAppraisal.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shellProvider(tt.script).Estimate(context.Background(), testProperty())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestScriptProvider_Timeout(t *testing.T) {
	provider := NewCommandProvider("sh", []string{"-c", "exec sleep 5"}, 100*time.Millisecond, quietLogger())

	start := time.Now()
	_, err := provider.Estimate(context.Background(), testProperty())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestNewScriptProvider_Python(t *testing.T) {
	provider := NewScriptProvider("scripts/lookup_price.py", time.Second, quietLogger())
	assert.Equal(t, "python3", provider.command)
	require.Len(t, provider.args, 1)
	assert.Contains(t, provider.args[0], "lookup_price.py")
}

func TestNewProvider(t *testing.T) {
	_, ok := NewProvider("", nil, time.Second, quietLogger()).(*StaticProvider)
	assert.True(t, ok)

	command, ok := NewProvider("sh", []string{"-c", "true"}, time.Second, quietLogger()).(*ScriptProvider)
	require.True(t, ok)
	assert.Equal(t, "sh", command.command)
	assert.Equal(t, []string{"-c", "true"}, command.args)

	script, ok := NewProvider("lookup_price.py", nil, time.Second, quietLogger()).(*ScriptProvider)
	require.True(t, ok)
	assert.Equal(t, "python3", script.command)
	require.Len(t, script.args, 1)
	assert.True(t, filepath.IsAbs(script.args[0]))
}
