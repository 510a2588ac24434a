package traffic

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/xid"

	"github.com/sarchlab/kncube/flit"
)

const (
	infoFileName = "TrafficInformation.csv"
	dataFileName = "TrafficData.csv"
)

var infoHeader = []string{
	"PacketID", "Source", "Destination", "PacketSize", "Status", "SentTime", "ReceivedTime",
}

var dataHeader = []string{"Data"}

// NewRunDir creates a fresh, uniquely named subdirectory of base to hold
// one run's CSV output, and returns its path.
func NewRunDir(base string) (string, error) {
	dir := filepath.Join(base, xid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating run directory: %w", err)
	}
	return dir, nil
}

// WriteCSV flattens every terminal's info/data entries, in terminal id
// order, into TrafficInformation.csv and TrafficData.csv under dir.
func WriteCSV(dir string, info map[int][]flit.InfoEntry, data map[int][][]float64) error {
	var flatInfo []flit.InfoEntry
	var flatData [][]float64

	lowest := 0
	for source := range info {
		if source < lowest {
			lowest = source
		}
	}
	for source := -1; source >= lowest; source-- {
		flatInfo = append(flatInfo, info[source]...)
		flatData = append(flatData, data[source]...)
	}

	if err := writeInfo(filepath.Join(dir, infoFileName), flatInfo); err != nil {
		return err
	}
	return writeData(filepath.Join(dir, dataFileName), flatData)
}

func writeInfo(path string, entries []flit.InfoEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(infoHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.PacketID),
			strconv.Itoa(e.Source),
			strconv.Itoa(e.Destination),
			strconv.Itoa(e.PacketSize),
			e.Status.String(),
			strconv.FormatFloat(e.SentTime, 'f', -1, 64),
			strconv.FormatFloat(e.ReceivedTime, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeData(path string, data [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dataHeader); err != nil {
		return err
	}
	for _, payload := range data {
		row := make([]string, len(payload))
		for i, v := range payload {
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadInfo reads TrafficInformation.csv back from dir, in file order.
func ReadInfo(dir string) ([]flit.InfoEntry, error) {
	path := filepath.Join(dir, infoFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	entries := make([]flit.InfoEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		e, err := parseInfoRow(row)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseInfoRow(row []string) (flit.InfoEntry, error) {
	packetID, err := strconv.Atoi(row[0])
	if err != nil {
		return flit.InfoEntry{}, err
	}
	source, err := strconv.Atoi(row[1])
	if err != nil {
		return flit.InfoEntry{}, err
	}
	destination, err := strconv.Atoi(row[2])
	if err != nil {
		return flit.InfoEntry{}, err
	}
	packetSize, err := strconv.Atoi(row[3])
	if err != nil {
		return flit.InfoEntry{}, err
	}
	status := parseStatus(row[4])
	sentTime, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return flit.InfoEntry{}, err
	}
	receivedTime, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return flit.InfoEntry{}, err
	}

	return flit.InfoEntry{
		PacketID:     packetID,
		Source:       source,
		Destination:  destination,
		PacketSize:   packetSize,
		Status:       status,
		SentTime:     sentTime,
		ReceivedTime: receivedTime,
	}, nil
}

func parseStatus(s string) flit.Status {
	switch s {
	case "S":
		return flit.Sent
	case "R":
		return flit.Received
	default:
		return flit.Valid
	}
}
