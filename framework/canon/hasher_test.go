package canon

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	test "github.com/retro-framework/go-fingerprint/framework/test_helper"
)

func Test_HashData(t *testing.T) {

	// Fingerprints recorded when the tagging scheme was fixed, any change
	// here invalidates every stored fingerprint.
	var golden = []struct {
		name string
		v    interface{}
		want string
	}{
		{"nested", []interface{}{1, 2, []interface{}{"a", 2, "c"}}, "mkhyglxfnhzjnxyyixdqibwwrftinkgh"},
		{"text", "1", "kjckshvqyxgutulxpqdcbgwqynecikho"},
		{"integer", 1, "kmuseapokwniodiaaqkbthebmiwsuzgd"},
		{"negative integer", -1, "xmhkzoazxzygqweilvtonwjyljwzucdy"},
		{"zero", 0, "xwtyieyvylvkigmzadinbpofyffmehaq"},
		{"list of text", []string{"1"}, "vbppcawudziqinqcuojszzvdayryhhmb"},
		{"bytes", []byte("12"), "zklkttlbjthzkppeeermruktfmhsefhl"},
		{"list of bytes", [][]byte{[]byte("1"), []byte("2")}, "bggphxtjkmeoeoxonlsrfoehmvusfxqu"},
		{"list of three", []string{"1", "2", "3"}, "rpaokzkayydloniwutxhdqmhsibezowc"},
		{"longer text", "123", "aheslytcdblfeuxjkurjltxzgsdqkvel"},
		{"empty list", []int{}, "odfokzoabmzaadgpwfoeauuvcndpozpo"},
		{"nested empty list", [][]int{{}}, "hdztjpdrgmburtbmcjkjbpcqwizkuvfj"},
		{"float", 1.0, "ransxmyptprgozejynzeydnhnexttwpq"},
		{"uuid", uuid.MustParse("12345678-1234-5678-1234-567812345678"), "ppidrvqeivoaolequigsxntnxefkklge"},
		{"utf-8 text", "héllo", "sijhfkczgnvlcenwrfjstsrcisukzbtk"},
	}

	for _, g := range golden {
		t.Run(g.name, func(t *testing.T) {
			got, err := HashData(g.v, DefaultHashLen, DefaultAlphabet())
			test.H(t).IsNil(err)
			test.H(t).StringEql(got, g.want)
		})
	}

	t.Run("empty text and empty bytes are the sentinel", func(t *testing.T) {
		var want = strings.Repeat("a", 32)
		for _, v := range []interface{}{"", []byte{}, []byte(nil), Text(""), Bytes(nil)} {
			got, err := HashData(v, 32, DefaultAlphabet())
			test.H(t).IsNil(err)
			test.H(t).StringEql(got, want)
		}
	})

	t.Run("the sentinel uses the first symbol of the alphabet", func(t *testing.T) {
		got, err := HashData("", 5, MustAlphabet("xyz"))
		test.H(t).IsNil(err)
		test.H(t).StringEql(got, "xxxxx")
	})

	t.Run("an empty list is not the sentinel", func(t *testing.T) {
		list, _ := HashData([]string{}, 32, DefaultAlphabet())
		text, _ := HashData("", 32, DefaultAlphabet())
		test.H(t).StringNotEql(list, text)
	})

	t.Run("a list holding empty text is hashed normally", func(t *testing.T) {
		got, err := HashData([]string{""}, 32, DefaultAlphabet())
		test.H(t).IsNil(err)
		test.H(t).StringNotEql(got, strings.Repeat("a", 32))
	})

	t.Run("text and integer of the same digits differ", func(t *testing.T) {
		text, _ := HashData("1", 32, DefaultAlphabet())
		integer, _ := HashData(1, 32, DefaultAlphabet())
		float, _ := HashData(1.0, 32, DefaultAlphabet())
		test.H(t).StringNotEql(text, integer)
		test.H(t).StringNotEql(integer, float)
	})

	t.Run("text and bytes of the same content are equal", func(t *testing.T) {
		text, _ := HashData("12", 32, DefaultAlphabet())
		b, _ := HashData([]byte("12"), 32, DefaultAlphabet())
		test.H(t).StringEql(text, b)
	})

	t.Run("container kind carries no weight", func(t *testing.T) {
		var (
			slice, _     = HashData([]int{1, 2, 3}, 32, DefaultAlphabet())
			array, _     = HashData([3]int{1, 2, 3}, 32, DefaultAlphabet())
			ifaces, _    = HashData([]interface{}{1, 2, 3}, 32, DefaultAlphabet())
			sequence, _  = HashData(Seq(Int(1), Int(2), Int(3)), 32, DefaultAlphabet())
			unsigned, _  = HashData([]uint8{1, 2, 3}, 32, DefaultAlphabet())
			mixedInts, _ = HashData([]interface{}{int8(1), uint64(2), int32(3)}, 32, DefaultAlphabet())
		)
		test.H(t).StringEql(slice, "irmslqefzembzwxrstedukpctjognfkt")
		test.H(t).StringEql(array, slice)
		test.H(t).StringEql(ifaces, slice)
		test.H(t).StringEql(sequence, slice)
		test.H(t).StringEql(mixedInts, slice)
		// []uint8 is a byte string, not a list
		test.H(t).StringNotEql(unsigned, slice)
	})

	t.Run("order matters", func(t *testing.T) {
		forward, _ := HashData([]int{1, 2, 3}, 32, DefaultAlphabet())
		backward, _ := HashData([]int{3, 2, 1}, 32, DefaultAlphabet())
		test.H(t).StringNotEql(forward, backward)
	})

	t.Run("nesting matters", func(t *testing.T) {
		nested, _ := HashData([]interface{}{1, []int{2, 3}}, 32, DefaultAlphabet())
		test.H(t).StringEql(nested, "bymelzgcqkmmhyjwusnhccfohjedhxkh")
	})

	t.Run("truncates to the requested length", func(t *testing.T) {
		for _, n := range []int{1, 8, 31, 32, 64, 100} {
			got, err := HashData([]interface{}{1, 2, []interface{}{"a", 2, "c"}}, n, DefaultAlphabet())
			test.H(t).IsNil(err)
			test.H(t).IntEql(len(got), n)
		}
		short, _ := HashData([]interface{}{1, 2, []interface{}{"a", 2, "c"}}, 8, DefaultAlphabet())
		test.H(t).StringEql(short, "mkhyglxf")
	})

	t.Run("pads short digests with the first symbol", func(t *testing.T) {
		// 512 bits never need more than 512 binary digits
		got, err := HashData("x", 600, MustAlphabet("ab"))
		test.H(t).IsNil(err)
		test.H(t).IntEql(len(got), 600)
		test.H(t).StringEql(got[512:], strings.Repeat("a", 88))
	})

	t.Run("rejects non positive lengths", func(t *testing.T) {
		_, err := HashData("x", 0, DefaultAlphabet())
		test.H(t).ErrIs(err, ErrInvalidInput)
	})

	t.Run("rejects the zero alphabet", func(t *testing.T) {
		_, err := HashData("x", 32, Alphabet{})
		test.H(t).ErrIs(err, ErrInvalidInput)
	})

	t.Run("rejects unsupported values anywhere in the tree", func(t *testing.T) {
		for _, v := range []interface{}{
			nil,
			true,
			map[string]int{"a": 1},
			struct{}{},
			[]interface{}{1, []interface{}{2, nil}},
			[]interface{}{1, map[int]int{}},
		} {
			got, err := HashData(v, 32, DefaultAlphabet())
			test.H(t).ErrIs(err, ErrUnsupportedType)
			test.H(t).StringEql(got, "")
		}
	})

	t.Run("names the offending type", func(t *testing.T) {
		_, err := HashData([]interface{}{1, true}, 32, DefaultAlphabet())
		test.H(t).StringEql(err.Error(), "canon: unsupported type bool")
	})
}

func Test_Hasher(t *testing.T) {

	t.Run("defaults", func(t *testing.T) {
		h, err := New()
		test.H(t).IsNil(err)
		test.H(t).IntEql(h.HashLen(), 32)
		test.H(t).StringEql(string(h.Algo()), "sha512")
		test.H(t).StringEql(h.Alphabet().String(), DefaultAlphabet().String())
	})

	t.Run("digest algorithms give different fingerprints", func(t *testing.T) {
		var (
			v    = []interface{}{1, 2, []interface{}{"a", 2, "c"}}
			seen = map[string]AlgoName{}
		)
		for _, algo := range []AlgoName{AlgoSHA256, AlgoSHA512, AlgoBLAKE3} {
			h, err := New(WithAlgo(algo))
			test.H(t).IsNil(err)
			got, err := h.Hash(v)
			test.H(t).IsNil(err)
			test.H(t).IntEql(len(got), 32)
			if other, dup := seen[got]; dup {
				t.Fatalf("%s and %s produced the same fingerprint %s", algo, other, got)
			}
			seen[got] = algo
		}
	})

	t.Run("sha256 fingerprint", func(t *testing.T) {
		h, _ := New(WithAlgo(AlgoSHA256))
		got, err := h.Hash([]interface{}{1, 2, []interface{}{"a", 2, "c"}})
		test.H(t).IsNil(err)
		test.H(t).StringEql(got, "xukptzqfcxmmnwxyrfhabrfdkfwvfveq")
	})

	t.Run("rejects unknown algorithms", func(t *testing.T) {
		_, err := New(WithAlgo("md4"))
		test.H(t).ErrIs(err, ErrInvalidInput)
	})

	t.Run("rejects negative max depth", func(t *testing.T) {
		_, err := New(WithMaxDepth(-1))
		test.H(t).ErrIs(err, ErrInvalidInput)
	})

	t.Run("max depth applies", func(t *testing.T) {
		h, _ := New(WithMaxDepth(1))
		_, err := h.Hash([]interface{}{1})
		test.H(t).IsNil(err)
		_, err = h.Hash([]interface{}{[]int{1}})
		test.H(t).ErrIs(err, ErrInvalidInput)
	})

	t.Run("multi byte alphabets count symbols, not bytes", func(t *testing.T) {
		h, _ := New(WithAlphabet(MustAlphabet("αβγδ")), WithHashLen(10))
		got, err := h.Hash("x")
		test.H(t).IsNil(err)
		test.H(t).IntEql(len([]rune(got)), 10)
		test.H(t).BoolEql(MustAlphabet("αβγδ").Contains(got), true)
	})

	t.Run("is deterministic across goroutines", func(t *testing.T) {
		var (
			h, _ = New()
			v    = []interface{}{1, 2, []interface{}{"a", 2, "c"}}
			wg   sync.WaitGroup
			res  = make([]string, 32)
		)
		for i := range res {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res[i], _ = h.Hash(v)
			}(i)
		}
		wg.Wait()
		for _, r := range res {
			test.H(t).StringEql(r, "mkhyglxfnhzjnxyyixdqibwwrftinkgh")
		}
	})
}
