// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitsio

import "testing"

func TestBuildTableSchemaDefaultColumnNames(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(
		strCard("XTENSION", "BINTABLE"),
		intCard("BITPIX", 8),
		intCard("NAXIS", 2),
		intCard("NAXIS1", 8),
		intCard("NAXIS2", 1),
		intCard("TFIELDS", 2),
		strCard("TFORM1", "J"),
		strCard("TFORM2", "J"),
	))

	schema, err := buildTableSchema(hdr)
	if err != nil {
		t.Fatalf("buildTableSchema: %v", err)
	}
	if schema.Table.Columns[0].Name != "col1" || schema.Table.Columns[1].Name != "col2" {
		t.Errorf("default column names = %q, %q, want col1, col2", schema.Table.Columns[0].Name, schema.Table.Columns[1].Name)
	}
	if schema.Table.SplitOffsets[0] != 0 || schema.Table.SplitOffsets[2] != 8 {
		t.Errorf("split offsets = %v, want [0 4 8]", schema.Table.SplitOffsets)
	}
}

// S5: malformed TFORM aborts Schema.build entirely.
func TestBuildTableSchemaMalformedTForm(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(
		strCard("XTENSION", "BINTABLE"),
		intCard("BITPIX", 8),
		intCard("NAXIS", 2),
		intCard("NAXIS1", 5),
		intCard("NAXIS2", 1),
		intCard("TFIELDS", 1),
		strCard("TFORM1", "Z"),
	))
	schema, err := buildTableSchema(hdr)
	if err == nil {
		t.Fatal("buildTableSchema should fail on an unrecognized TFORM code")
	}
	if schema != nil {
		t.Error("buildTableSchema must not return a partial schema on failure")
	}
}

func TestBuildImageSchemaEmittedField(t *testing.T) {
	hdr := readHeaderFromBytes(t, buildHeader(
		boolCard("SIMPLE", true),
		intCard("BITPIX", 16),
		intCard("NAXIS", 2),
		intCard("NAXIS1", 4),
		intCard("NAXIS2", 3),
	))
	schema, err := buildImageSchema(hdr)
	if err != nil {
		t.Fatalf("buildImageSchema: %v", err)
	}
	if len(schema.Fields) != 1 || schema.Fields[0].Name != "Image" || !schema.Fields[0].Array {
		t.Fatalf("emitted schema = %+v, want single array field named Image", schema.Fields)
	}
	if schema.Image.ElementCount() != 12 {
		t.Errorf("ElementCount() = %d, want 12", schema.Image.ElementCount())
	}
}
