// Package rowskema provides a schema-driven, symmetric codec for the tabular
// channel between the launcher host and its plugin processes.
//
// - A closed wire model: NULL, int16/32/64, float32/64, text and blob cells (Value)
// - Columns that pair a stable wire name with a Codec, declared once per domain
// - Immutable Schemas built from a complete column list (NewSchema)
// - A scoped reader (WithColumns) for the consumer side and a row builder
//   (BuildRows, BuildRecord) for the provider side
//
// Decoding never fails past a single cell: a missing column, a NULL cell and a
// cell that cannot be decoded all surface as an absent value, with the latter
// reported through the diagnostics logger (SetLogger) as an Issue.
//
// Design policy:
// - Keep the wire/column/schema primitives in the root package.
// - Place derived codecs (enums, lenient JSON, time) under codec/ and the per
//   domain contracts under contract/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	// provider
//	table := rowskema.BuildRows(calendar.EventColumns, events, func(w *rowskema.RowWriter, e calendar.Event) {
//		calendar.ID.Set(w, e.ID)
//		calendar.Title.Set(w, e.Title)
//	})
//
//	// consumer
//	err := rowskema.WithColumns(table, calendar.EventColumns, func(sc *rowskema.Scope) error {
//		for sc.Next() {
//			id, ok := calendar.ID.Get(sc)
//			...
//		}
//		return nil
//	})
package rowskema
