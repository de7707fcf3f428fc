package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/recoder"
)

const evaluationCSV = "\ufeffClave,Nombre y Email,Prog,Res1,Res2,Res3,Observ1,Observ2,Observ3\n" +
	"10,Ana Ruiz - ana@uni.edu,ING,BUENO,MUY BUENO,No disponible,Participa (p),,Distraída (n)\n" +
	",,,,,,,,\n" +
	"11,Luis Paz - luis@uni.edu,MED,SOBRESALIENTE,ACEPTABLE,BUENO,,,\n"

func TestParseCSVEvaluations(t *testing.T) {
	table, err := ParseTable("datos.csv", []byte(evaluationCSV))
	require.NoError(t, err)
	assert.Equal(t, "Clave", table.Header[0])
	require.Len(t, table.Rows, 2, "blank rows are skipped")

	records, err := Evaluations(table)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "10", records[0].Source.Key)
	assert.Equal(t, "Participa Distraída", records[0].FullObservation)
	assert.Equal(t, models.SentimentNegative, records[0].Observations[2].Tag)
	require.NotNil(t, records[1].Scores[0])
	assert.Equal(t, 5, *records[1].Scores[0])
}

func TestEvaluationsSchemaViolation(t *testing.T) {
	table, err := ParseTable("datos.csv", []byte("Clave,Res1,Observ1\n1,BUENO,x\n"))
	require.NoError(t, err)

	_, err = Evaluations(table)
	var sv *recoder.SchemaViolation
	require.True(t, errors.As(err, &sv))
	assert.Equal(t, []string{"Res2", "Res3", "Observ2", "Observ3"}, sv.Fields)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Clave", "Prog", "Res1", "Res2", "Res3", "Observ1", "Observ2", "Observ3"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"7", "ING", "ACEPTABLE", "BUENO", "INSUFICIENTE", "Bien (p)", "Regular", "Mal (n)"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := ParseTable("datos.xlsx", buf.Bytes())
	require.NoError(t, err)

	records, err := Evaluations(table)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Bien Regular Mal", records[0].FullObservation)
	require.NotNil(t, records[0].Scores[2])
	assert.Equal(t, 1, *records[0].Scores[2])
}

func TestParseTableErrors(t *testing.T) {
	_, err := ParseTable("datos.json", []byte("{}"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = ParseTable("vacio.csv", nil)
	assert.ErrorContains(t, err, "missing header row")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.csv")
	require.NoError(t, os.WriteFile(path, []byte(evaluationCSV), 0o644))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, evaluationCSV, string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const salesCSV = "Fecha,Categoría,Región,Ventas,Cantidad,Beneficio\n" +
	"2023-01-05,Ropa,Norte,\"1,250.50\",3,300.10\n" +
	"2023-02-14 10:30:00,Hogar,Sur,80,1,16\n"

func TestSales(t *testing.T) {
	table, err := ParseTable("ventas.csv", []byte(salesCSV))
	require.NoError(t, err)

	sales, err := Sales(table)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), sales[0].Date)
	assert.Equal(t, 1250.50, sales[0].Sales)
	assert.Equal(t, 3, sales[0].Quantity)
	assert.Equal(t, "Norte", sales[0].Region)
	assert.Equal(t, time.Date(2023, 2, 14, 10, 30, 0, 0, time.UTC), sales[1].Date)
}

func TestSalesErrors(t *testing.T) {
	table, err := ParseTable("ventas.csv", []byte("Fecha,Ventas\n2023-01-01,10\n"))
	require.NoError(t, err)
	_, err = Sales(table)
	assert.ErrorContains(t, err, "Categoría")

	table, err = ParseTable("ventas.csv", []byte("Fecha,Categoría,Región,Ventas,Cantidad,Beneficio\n2023-01-01,Ropa,Sur,diez,1,2\n"))
	require.NoError(t, err)
	_, err = Sales(table)
	assert.ErrorContains(t, err, "row 1 column Ventas")
}
