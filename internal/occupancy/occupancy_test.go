package occupancy

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("AddRemoveContains", func(t *testing.T) {
		s := New(4)
		s.Add(1)
		s.Add(3)
		s.Add(200) // beyond initial size

		assert.True(t, s.Contains(1))
		assert.True(t, s.Contains(200))
		assert.False(t, s.Contains(2))
		assert.False(t, s.Contains(-1))
		assert.False(t, s.Contains(10_000))
		assert.Equal(t, 3, s.Count())

		s.Remove(1)
		s.Remove(-5)
		assert.False(t, s.Contains(1))
		assert.Equal(t, 2, s.Count())
	})

	t.Run("Next", func(t *testing.T) {
		s := New(0)
		_, ok := s.Next(0)
		assert.False(t, ok)

		for _, i := range []int{2, 5, 130} {
			s.Add(i)
		}

		var got []int
		for i, ok := s.Next(0); ok; i, ok = s.Next(i + 1) {
			got = append(got, i)
		}
		assert.Equal(t, []int{2, 5, 130}, got)

		i, ok := s.Next(-3)
		require.True(t, ok)
		assert.Equal(t, 2, i)
	})

	t.Run("Prev", func(t *testing.T) {
		s := New(0)
		_, ok := s.Prev(10)
		assert.False(t, ok)

		for _, i := range []int{0, 64, 65} {
			s.Add(i)
		}

		i, ok := s.Prev(1_000)
		require.True(t, ok)
		assert.Equal(t, 65, i)

		i, ok = s.Prev(63)
		require.True(t, ok)
		assert.Equal(t, 0, i)

		_, ok = s.Prev(-1)
		assert.False(t, ok)

		s.Remove(0)
		_, ok = s.Prev(63)
		assert.False(t, ok)
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		s := New(8)
		s.Add(3)
		c := s.Clone()
		c.Add(4)
		s.Remove(3)

		assert.True(t, c.Contains(3))
		assert.True(t, c.Contains(4))
		assert.False(t, s.Contains(4))
	})

	t.Run("Reset", func(t *testing.T) {
		s := New(8)
		s.Add(7)
		s.Reset()
		assert.Equal(t, 0, s.Count())
		assert.False(t, s.Contains(7))
	})

	t.Run("Binary", func(t *testing.T) {
		s := New(0)
		s.Add(1)
		s.Add(99)

		data, err := s.MarshalBinary()
		require.NoError(t, err)

		var out Set
		require.NoError(t, out.UnmarshalBinary(data))
		assert.True(t, out.Contains(1))
		assert.True(t, out.Contains(99))
		assert.Equal(t, 2, out.Count())
	})

	t.Run("UnmarshalBinaryMax", func(t *testing.T) {
		s := New(100)
		s.Add(1)
		s.Add(99)

		data, err := s.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, EncodedSize(100), uint64(len(data)))

		var out Set
		require.NoError(t, out.UnmarshalBinaryMax(data, 100))
		assert.Equal(t, 2, out.Count())

		assert.ErrorIs(t, out.UnmarshalBinaryMax(data, 99), ErrTooLong)
		assert.Error(t, out.UnmarshalBinaryMax(data[:len(data)-8], 100))
		assert.Error(t, out.UnmarshalBinaryMax(data[:4], 100))

		huge := binary.BigEndian.AppendUint64(nil, 1<<63)
		assert.ErrorIs(t, out.UnmarshalBinaryMax(huge, 1<<62), ErrTooLong)
	})
}
