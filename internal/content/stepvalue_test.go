package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStepValueYAMLInference(t *testing.T) {
	src := `
pattern: '^S[0-9]{2}-[0-9]{5}$'
min: 0.8
retries: 3
required: true
codes: ["22637-3", "60568-3"]
`
	var params map[string]StepValue
	require.NoError(t, yaml.Unmarshal([]byte(src), &params))

	assert.Equal(t, StringValue("^S[0-9]{2}-[0-9]{5}$"), params["pattern"])
	assert.Equal(t, NumberValue(0.8), params["min"])
	assert.Equal(t, NumberValue(3), params["retries"], "ints and floats share the number kind")
	assert.Equal(t, BoolValue(true), params["required"])
	assert.Equal(t, ListValue("22637-3", "60568-3"), params["codes"])
}

func TestStepValueJSONRoundTrip(t *testing.T) {
	in := map[string]StepValue{
		"name":  StringValue("grossing"),
		"score": NumberValue(0.95),
		"qc":    BoolValue(false),
		"codes": ListValue("396152003"),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out map[string]StepValue
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestStepValueRejectsUnsupportedShapes(t *testing.T) {
	var v StepValue
	assert.Error(t, json.Unmarshal([]byte(`{"nested": 1}`), &v))
	assert.Error(t, yaml.Unmarshal([]byte("a:\n  b: 1"), &struct {
		A StepValue `yaml:"a"`
	}{}))
}
