package emit

import (
	"bytes"
	"path/filepath"
	"strconv"

	"github.com/sarchlab/radflow/config"
	"github.com/sarchlab/radflow/derive"
	"github.com/sarchlab/radflow/params"
)

// RenderKnobTable renders the runtime knob table: the knobs of every
// cluster slot, then the cluster-wide knobs with the inter-RAD link timing
// converted to cycles.
func RenderKnobTable(m *config.Model, d *derive.Derived) Artifact {
	var buf bytes.Buffer

	for slot, ordinal := range m.Slots {
		knobs := m.Instances[ordinal].Knobs
		id := strconv.Itoa(slot)

		for _, f := range knobs.Catalog().Fields() {
			values := knobs.Render(f.Name)
			if f.Name == "noc_num_nodes" {
				values = formatInts(d.NodeCounts(ordinal))
			}
			writeKnob(&buf, f, values, f.Name, id)
		}
	}

	cluster := m.Cluster
	for _, f := range cluster.Catalog().Fields() {
		switch f.Name {
		case "inter_rad_latency":
			writeLine(&buf, "inter_rad_latency_cycles", strconv.Itoa(d.LatencyCycles))
		case "inter_rad_bw":
			writeLine(&buf, "inter_rad_bw_accept_cycles",
				strconv.FormatInt(d.Bandwidth.Accept, 10))
			writeLine(&buf, "inter_rad_bw_total_cycles",
				strconv.FormatInt(d.Bandwidth.Total, 10))
		default:
			writeKnob(&buf, f, cluster.Render(f.Name), f.Name)
		}
	}

	return Artifact{
		Kind: KnobTable,
		Path: filepath.Join(m.Header.RootDir(), "sim", "radsim_knobs"),
		Data: buf.Bytes(),
	}
}

// writeKnob writes the name, the keys and the values of one knob. List
// items are each followed by a space.
func writeKnob(buf *bytes.Buffer, f params.Field, values []string, keys ...string) {
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteByte(' ')
	}

	if f.Shape == params.List {
		for _, v := range values {
			buf.WriteString(v)
			buf.WriteByte(' ')
		}
	} else if len(values) > 0 {
		buf.WriteString(values[0])
	}
	buf.WriteByte('\n')
}

func writeLine(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteByte(' ')
	buf.WriteString(value)
	buf.WriteByte('\n')
}

func formatInts(v []int) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = strconv.Itoa(x)
	}
	return out
}
