package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRef(t *testing.T) {
	tests := []struct {
		name      string
		ref       VehicleRef
		wantIndex int
		wantOK    bool
	}{
		{name: "zero value", ref: VehicleRef(0), wantOK: false},
		{name: "unassigned", ref: Unassigned, wantOK: false},
		{name: "negative position", ref: AssignTo(-3), wantOK: false},
		{name: "first vehicle", ref: AssignTo(0), wantIndex: 0, wantOK: true},
		{name: "third vehicle", ref: AssignTo(2), wantIndex: 2, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := tt.ref.Index()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, tt.ref.Assigned())
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, i)
			}
		})
	}
}

func TestVehicleRef_ZeroValueRecords(t *testing.T) {
	assert.False(t, TowTruck{}.Vehicle.Assigned())
	assert.False(t, Adjuster{}.Vehicle.Assigned())

	var a Adjuster
	require.NoError(t, json.Unmarshal([]byte(`{"name":"ana"}`), &a))
	assert.False(t, a.Vehicle.Assigned())

	data, err := json.Marshal(TowTruck{Plate: "C-1", Vehicle: AssignTo(0)})
	require.NoError(t, err)
	var back TowTruck
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, AssignTo(0), back.Vehicle)
}
