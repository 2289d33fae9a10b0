// Package dut extracts data-type units from IEC 61131-3 declaration text.
//
// A data-type unit (DUT) is one named TYPE ... END_TYPE block: a STRUCT,
// UNION, ENUM or alias declaration. Extraction is pure text-to-record work;
// member types stay as raw text until the resolver links them to schema
// nodes. Keywords are case-insensitive, and comments and {...} pragmas are
// ignored.
package dut
