package tans

import "unsafe"

// Train counts the bytes of inputs and builds a Table for that distribution
// with the default configuration. Every input can then be encoded with the
// returned Table. Training on no bytes at all fails with a
// *ConfigurationError, as there is no alphabet to build from.
func Train(inputs [][]byte) (*Table, error) {
	return TableConfig{}.Train(inputs)
}

// Train is the configurable form of Train.
func (c TableConfig) Train(inputs [][]byte) (*Table, error) {
	d := Count(inputs...)
	return c.BuildTable(d.Frequencies, d.Total)
}

// TrainStrings converts []string to [][]byte and calls Train.
func TrainStrings(inputs []string) (*Table, error) {
	bytes := make([][]byte, len(inputs))
	for i := range inputs {
		bytes[i] = unsafe.Slice(unsafe.StringData(inputs[i]), len(inputs[i]))
	}
	return Train(bytes)
}
