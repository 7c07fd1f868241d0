package layered

import (
	"reflect"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	c := chainCircuit()
	buf := c.Serialize()
	got, err := Deserialize(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", c, got)
	}
}

func TestDeserializeBadHeader(t *testing.T) {
	buf := chainCircuit().Serialize()
	buf[0] ^= 1
	if _, err := Deserialize(buf); err == nil {
		t.Fatal("expected header error")
	}
}

func TestDeserializeTruncated(t *testing.T) {
	buf := chainCircuit().Serialize()
	if _, err := Deserialize(buf[:len(buf)-4]); err == nil {
		t.Fatal("expected truncation error")
	}
}
