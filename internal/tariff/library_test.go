package tariff

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

const twoTariffs = `
UtilityCost:Tariff, A, Electricity:Facility;
UtilityCost:Tariff, B, Electricity:Facility;
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"b_elec.idf":  {Data: []byte("UtilityCost:Tariff, Elec B, Electricity:Facility, kWh;\nUtilityCost:Charge:Simple, C, Elec B, totalEnergy, Annual, EnergyCharges, 0.1;\n")},
		"a_elec.idf":  {Data: []byte("UtilityCost:Tariff, Elec A, Electricity:Facility, kWh;\n")},
		"gas.idf":     {Data: []byte("UtilityCost:Tariff, Gas, NaturalGas:Facility, Therm;\n")},
		"two.idf":     {Data: []byte(twoTariffs)},
		"none.idf":    {Data: []byte("Timestep, 4;\n")},
		"broken.idf":  {Data: []byte("UtilityCost:Tariff, X, Electricity:Facility")},
		"readme.txt":  {Data: []byte("not a tariff")},
		"nometer.idf": {Data: []byte("UtilityCost:Tariff, Lonely;\n")},
	}
}

func TestNew_SkipsUnusableFiles(t *testing.T) {
	lib, err := New(testFS(), "test")
	require.NoError(t, err)

	entries := lib.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{File: "a_elec", TariffName: "Elec A", Meter: "Electricity:Facility", Objects: 1}, entries[0])
	assert.Equal(t, "b_elec", entries[1].File)
	assert.Equal(t, 2, entries[1].Objects)
	assert.Equal(t, "gas", entries[2].File)

	assert.Equal(t, []string{"Electricity:Facility", "NaturalGas:Facility"}, lib.Meters())
	byMeter := lib.ByMeter()
	assert.Len(t, byMeter["Electricity:Facility"], 2)
	assert.Len(t, byMeter["NaturalGas:Facility"], 1)
}

func TestBundled(t *testing.T) {
	lib, err := Bundled()
	require.NoError(t, err)
	assert.Equal(t, "embedded", lib.Source())

	var files []string
	for _, e := range lib.Entries() {
		files = append(files, e.File)
	}
	assert.Equal(t, []string{"electric_flat", "electric_tou_demand", "gas_block", "gas_flat"}, files)
	assert.Equal(t, []string{"ElectricityPurchased:Facility", "NaturalGas:Facility"}, lib.Meters())

	objs, err := lib.Load("electric_tou_demand")
	require.NoError(t, err)
	assert.Len(t, objs, 6)
}

func TestLoad_NotFound(t *testing.T) {
	lib, err := New(testFS(), "test")
	require.NoError(t, err)

	for _, name := range []string{"missing", "../a_elec", "sub/a_elec.idf"} {
		_, err := lib.Load(name)
		assert.True(t, errors.Is(err, ErrNotFound), name)
	}
}

func TestLoad_AcceptsExtensionAndReturnsCopies(t *testing.T) {
	lib, err := New(testFS(), "test")
	require.NoError(t, err)
	lib.WithCache(NewCache(time.Hour))

	first, err := lib.Load("a_elec.idf")
	require.NoError(t, err)
	first[0].SetField(0, "mutated")

	second, err := lib.Load("a_elec")
	require.NoError(t, err)
	assert.Equal(t, "Elec A", second[0].Name())
	assert.Equal(t, 1, lib.cache.Len())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat.idf"), []byte("UtilityCost:Tariff, Flat, Electricity:Facility;\n"), 0o644))

	lib, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, lib.Source())
	require.Len(t, lib.Entries(), 1)

	_, err = Open(filepath.Join(dir, "flat.idf"))
	assert.Error(t, err)
	_, err = Open(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestDefault_UsesTariffDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TARIFF_DIR", dir)

	lib, err := Default()
	require.NoError(t, err)
	assert.Equal(t, dir, lib.Source())
	assert.Empty(t, lib.Entries())
}

func TestIndex_SaveLoad(t *testing.T) {
	lib, err := New(testFS(), "test")
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	path := filepath.Join(t.TempDir(), "data", "tariffs.json")
	require.NoError(t, SaveIndex(lib.Index(now), path))

	got, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, "test", got.Source)
	assert.Equal(t, "2024-05-01T12:00:00Z", got.UpdatedAt)
	assert.Equal(t, lib.Entries(), got.Tariffs)
}
