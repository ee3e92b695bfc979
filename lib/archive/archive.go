// Copyright 2026 The Revive Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive reads and writes single-file backups of the whole
// data directory: all five collections in one checksummed, optionally
// compressed file.
//
// Layout: 4-byte magic "RVA1", one compression tag byte, the
// uncompressed payload size (8 bytes big-endian), the blake3-256 of
// the compressed payload (32 bytes), then the payload: the CBOR
// encoding of Payload, compressed per the tag. The checksum covers
// exactly the bytes on the wire, so truncation and bit rot are both
// caught before decompression runs.
//
// Import replaces each collection with a separate snapshot save.
// There is no cross-collection transaction; an import that fails
// midway leaves some collections restored and the rest untouched,
// and is safe to retry.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/revive-exchange/revive/lib/auth"
	"github.com/revive-exchange/revive/lib/catalog"
	"github.com/revive-exchange/revive/lib/codec"
	"github.com/revive-exchange/revive/lib/demand"
	"github.com/revive-exchange/revive/lib/entity"
	"github.com/revive-exchange/revive/lib/listing"
	"github.com/revive-exchange/revive/lib/request"
	"github.com/revive-exchange/revive/lib/snapshot"
)

// magic identifies a Revive archive, version 1. Changing the payload
// layout means a new magic, not a silent format change.
var magic = [4]byte{'R', 'V', 'A', '1'}

var (
	// ErrBadMagic reports a file that is not a Revive archive.
	ErrBadMagic = errors.New("archive: not a revive archive")
	// ErrChecksumMismatch reports a payload whose blake3 digest does
	// not match the recorded one.
	ErrChecksumMismatch = errors.New("archive: payload checksum mismatch")

	errIncompressible = errors.New("archive: payload did not compress")
)

// CompressionTag identifies the payload compression algorithm. The
// values are format constants.
type CompressionTag uint8

const (
	// CompressionNone stores the CBOR payload as-is.
	CompressionNone CompressionTag = 0
	// CompressionLZ4 is LZ4 block compression: fast, modest ratio.
	CompressionLZ4 CompressionTag = 1
	// CompressionZstd is zstd at the default level: better ratio for
	// the text-heavy CBOR payload, the export default.
	CompressionZstd CompressionTag = 2
)

// String returns the name used on the command line.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseCompressionTag parses a compression tag from its command-line
// name.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// Payload is the archived form of the whole data directory.
type Payload struct {
	Users        []*entity.User        `json:"users"`
	Items        []*entity.Item        `json:"items"`
	ItemTypes    []*entity.ItemType    `json:"item_types"`
	Demands      []*entity.Demand      `json:"demands"`
	Applications []*entity.Application `json:"applications"`
}

// Write encodes payload to w using the requested compression. A
// payload the algorithm cannot shrink is stored uncompressed with
// the tag downgraded to none.
func Write(w io.Writer, payload *Payload, tag CompressionTag) error {
	encoded, err := codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding archive payload: %w", err)
	}

	compressed, err := compress(encoded, tag)
	if errors.Is(err, errIncompressible) {
		compressed, tag = encoded, CompressionNone
	} else if err != nil {
		return err
	}

	header := make([]byte, 0, 4+1+8+32)
	header = append(header, magic[:]...)
	header = append(header, byte(tag))
	header = binary.BigEndian.AppendUint64(header, uint64(len(encoded)))
	digest := blake3.Sum256(compressed)
	header = append(header, digest[:]...)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing archive header: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("writing archive payload: %w", err)
	}
	return nil
}

// Read decodes an archive produced by Write, verifying the checksum
// before decompressing.
func Read(r io.Reader) (*Payload, error) {
	header := make([]byte, 4+1+8+32)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading archive header: %w", err)
	}
	if [4]byte(header[:4]) != magic {
		return nil, ErrBadMagic
	}
	tag := CompressionTag(header[4])
	uncompressedSize := binary.BigEndian.Uint64(header[5:13])
	var recorded [32]byte
	copy(recorded[:], header[13:45])

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading archive payload: %w", err)
	}
	if blake3.Sum256(compressed) != recorded {
		return nil, ErrChecksumMismatch
	}

	encoded, err := decompress(compressed, tag, int(uncompressedSize))
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := codec.Unmarshal(encoded, &payload); err != nil {
		return nil, fmt.Errorf("decoding archive payload: %w", err)
	}
	return &payload, nil
}

// Export writes every collection in the store to a new archive at
// path.
func Export(store *snapshot.Store, path string, tag CompressionTag) error {
	payload, err := collect(store)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", path, err)
	}
	if err := Write(file, payload, tag); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing archive %s: %w", path, err)
	}
	return nil
}

// Import replaces every collection in the store with the archive's
// contents.
func Import(store *snapshot.Store, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer file.Close()

	payload, err := Read(file)
	if err != nil {
		return err
	}

	if err := snapshot.Save(store, auth.Collection, payload.Users); err != nil {
		return err
	}
	if err := snapshot.Save(store, listing.Collection, payload.Items); err != nil {
		return err
	}
	if err := snapshot.Save(store, catalog.Collection, payload.ItemTypes); err != nil {
		return err
	}
	if err := snapshot.Save(store, demand.Collection, payload.Demands); err != nil {
		return err
	}
	return snapshot.Save(store, request.Collection, payload.Applications)
}

func collect(store *snapshot.Store) (*Payload, error) {
	users, err := snapshot.Load[*entity.User](store, auth.Collection)
	if err != nil {
		return nil, err
	}
	items, err := snapshot.Load[*entity.Item](store, listing.Collection)
	if err != nil {
		return nil, err
	}
	itemTypes, err := snapshot.Load[*entity.ItemType](store, catalog.Collection)
	if err != nil {
		return nil, err
	}
	demands, err := snapshot.Load[*entity.Demand](store, demand.Collection)
	if err != nil {
		return nil, err
	}
	applications, err := snapshot.Load[*entity.Application](store, request.Collection)
	if err != nil {
		return nil, err
	}
	return &Payload{
		Users:        users,
		Items:        items,
		ItemTypes:    itemTypes,
		Demands:      demands,
		Applications: applications,
	}, nil
}

// zstd encoder and decoder are reused across calls; both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("archive: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("archive: zstd decoder initialization failed: " + err.Error())
	}
}

func compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// Zero means the block was incompressible.
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

func decompress(compressed []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match recorded %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil

	case CompressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		decompressed, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(decompressed) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(decompressed), uncompressedSize)
		}
		return decompressed, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}
