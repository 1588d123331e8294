// Package colatest provides test-debug helpers for dumping a built model or
// derived schema to a human-readable form, adapted from sqltest/querydump.go's
// use of repr for readable test failure output.
package colatest

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/repr"

	"github.com/colalang/cola/cola/model"
	"github.com/colalang/cola/cola/schema"
)

// DumpModel renders every node of m as a tab-aligned table: id, kind, parent,
// name, and a repr-formatted view of its scalar fields. Intended for use in
// test failure messages (t.Log(colatest.DumpModel(m))), not production code.
func DumpModel(m *model.Model) string {
	var out bytes.Buffer
	w := tabwriter.NewWriter(&out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "id\tkind\tparent\tname\ttype\tfields")
	for _, n := range m.AllNodes() {
		kind := "Entity"
		if n.Kind == model.PluralNode {
			kind = "Plural"
		}
		fields := ""
		if n.Fields != nil && n.Fields.Len() > 0 {
			dump := map[string]model.Scalar{}
			for pair := n.Fields.Oldest(); pair != nil; pair = pair.Next() {
				dump[pair.Key] = pair.Value
			}
			fields = repr.String(dump)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n", n.Id, kind, n.ParentId, n.Name, n.TypeName, fields)
	}
	w.Flush()
	return out.String()
}

// DumpSchema renders every TypeSchema in set as a tab-aligned table: type
// key, whether it's a plural wrapper, and a repr-formatted view of its
// fields in emission order.
func DumpSchema(set *schema.Set) string {
	var out bytes.Buffer
	w := tabwriter.NewWriter(&out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "order\ttype key\tstruct\tplural wrapper\tfields")
	keys := set.Order
	if len(keys) == 0 {
		for k := range set.Types {
			keys = append(keys, k)
		}
	}
	for i, k := range keys {
		ts := set.Types[k]
		if ts == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", i, ts.TypeKey, ts.StructName(), ts.IsPluralWrapper, repr.String(ts.Fields))
	}
	w.Flush()
	return out.String()
}
