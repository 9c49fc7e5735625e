// Package widget turns a covid.Snapshot into a widget description.
//
// Classification maps the parsed case count to a tier (background colour) and a
// count font size using ordered threshold tables. Presentation assembles the ordered
// display rows: a title row, the emphasised count row, then the metadata rows chosen
// by a Layout. Everything here is a pure function of its inputs.
package widget
