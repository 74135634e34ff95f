/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package transaction

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/big"
)

// ErrU128Overflow balance does not fit into an unsigned 128 bit integer
var ErrU128Overflow = errors.New("value does not fit into u128")

// borshWriter writes the borsh binary layout: little endian integers,
// u32 length prefixed strings and vectors.
type borshWriter struct {
	buf bytes.Buffer
	err error
}

func (w *borshWriter) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *borshWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *borshWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// u128 writes a non negative big.Int in 16 bytes
func (w *borshWriter) u128(v *big.Int) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		w.setErr(ErrU128Overflow)
		return
	}
	var be [16]byte
	v.FillBytes(be[:])
	for i := len(be) - 1; i >= 0; i-- {
		w.buf.WriteByte(be[i])
	}
}

func (w *borshWriter) fixed(b []byte) {
	w.buf.Write(b)
}

func (w *borshWriter) bytes(b []byte) {
	w.u32(uint32(len(b)))
	w.buf.Write(b)
}

func (w *borshWriter) string(s string) {
	w.bytes([]byte(s))
}

func (w *borshWriter) strings(ss []string) {
	w.u32(uint32(len(ss)))
	for _, s := range ss {
		w.string(s)
	}
}

func (w *borshWriter) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *borshWriter) result() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}
