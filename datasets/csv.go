package datasets

import (
	"encoding/csv"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/hayato-ueda/mlgrid/pkg/errors"
)

// LoadCSV reads a numeric CSV file into a feature matrix and a label column.
// labelCol selects the column used as y; the remaining columns become X in
// their original order. When hasHeader is true the first record is skipped.
func LoadCSV(path string, labelCol int, hasHeader bool) (*mat.Dense, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "LoadCSV: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "LoadCSV: parse %s", path)
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, nil, errors.NewModelError("LoadCSV", "no data rows", errors.ErrEmptyData)
	}

	nCols := len(records[0])
	if labelCol < 0 || labelCol >= nCols {
		return nil, nil, errors.NewValueError("LoadCSV", "label column out of range")
	}
	if nCols < 2 {
		return nil, nil, errors.NewValueError("LoadCSV", "need at least one feature column besides the label")
	}

	nRows := len(records)
	X := mat.NewDense(nRows, nCols-1, nil)
	y := mat.NewDense(nRows, 1, nil)

	for i, record := range records {
		if len(record) != nCols {
			return nil, nil, errors.NewDimensionError("LoadCSV", nCols, len(record), 1)
		}
		col := 0
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "LoadCSV: row %d, column %d", i, j)
			}
			if j == labelCol {
				y.Set(i, 0, v)
				continue
			}
			X.Set(i, col, v)
			col++
		}
	}

	return X, y, nil
}
