package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV emits a trajectory as t,S,I,R rows for external plotting tools.
// The time column is the step index scaled by dt.
func WriteCSV(w io.Writer, traj Trajectory, dt float64) error {
	if len(traj) == 0 {
		return fmt.Errorf("%w: cannot write an empty trajectory", ErrInvalidParameter)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "S", "I", "R"}); err != nil {
		return err
	}
	for i, st := range traj {
		row := []string{
			strconv.FormatFloat(float64(i)*dt, 'g', -1, 64),
			strconv.FormatInt(st.S, 10),
			strconv.FormatInt(st.I, 10),
			strconv.FormatInt(st.R, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes a trajectory to the named file, creating or
// truncating it.
func WriteCSVFile(path string, traj Trajectory, dt float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trajectory file: %w", err)
	}
	if err := WriteCSV(f, traj, dt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
