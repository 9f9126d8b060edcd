package macaddr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "이미 정규형인 입력",
			input: "AA:BB:CC:DD:EE:FF",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "소문자는 대문자로 변환",
			input: "aa:bb:cc:dd:ee:ff",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "구분자 없는 12자리 16진수",
			input: "c85a9fc7b9c0",
			want:  "C8:5A:9F:C7:B9:C0",
		},
		{
			name:  "대시 구분자",
			input: "AA-BB-CC-DD-EE-FF",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "16진수가 아닌 문자 제거",
			input: "AAxBByCCzDD EE.FF",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "타이핑 중간 상태 - 부분 입력",
			input: "AABB",
			want:  "AA:BB",
		},
		{
			name:  "홀수 자리 부분 입력",
			input: "AABBC",
			want:  "AA:BB:C",
		},
		{
			name:  "17자 초과 입력은 잘림",
			input: "AABBCCDDEEFF0011",
			want:  "AA:BB:CC:DD:EE:FF",
		},
		{
			name:  "빈 입력",
			input: "",
			want:  "",
		},
		{
			name:  "16진수가 전혀 없는 입력",
			input: "zz--!!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

// 임의 입력에 대한 구조적 속성: 16진수와 콜론만 포함, 길이 17 이하,
// 콜론은 2자리마다만 출현
func TestNormalize_StructuralProperties(t *testing.T) {
	inputs := []string{
		"AA:BB:CC:DD:EE:FF",
		"hello world",
		"12345",
		"ff-ee-dd-cc-bb-aa-99-88",
		"  c8 5a 9f c7 b9 c0  ",
		"콜론:없는:입력",
	}

	for _, input := range inputs {
		got := Normalize(input)

		assert.LessOrEqual(t, len(got), CanonicalLength, "input=%q", input)

		for i, r := range got {
			if (i+1)%3 == 0 {
				assert.Equal(t, ':', r, "input=%q pos=%d", input, i)
			} else {
				assert.Contains(t, "0123456789ABCDEF", string(r), "input=%q pos=%d", input, i)
			}
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"AA:BB:CC:DD:EE:FF", "c85a9fc7b9c0", "AA:BB", ""}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input=%q", input)
	}
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		mac  string
		want bool
	}{
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"aA:bB:cC:dD:eE:fF", true},
		{"AA:BB:CC:DD:EE", false},
		{"AA:BB:CC:DD:EE:FF:00", false},
		{"AABBCCDDEEFF", false},
		{"AA-BB-CC-DD-EE-FF", false},
		{"GG:HH:II:JJ:KK:LL", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidFormat(tt.mac), "mac=%q", tt.mac)
	}
}

// 구분자 없는 12자리 16진수는 정규화 후 유효한 형식이 됨
func TestIsValidFormat_AfterNormalize(t *testing.T) {
	assert.True(t, IsValidFormat(Normalize("c85a9fc7b9c0")))
}

func TestParseBulk(t *testing.T) {
	t.Run("쉼표와 줄바꿈이 섞인 입력", func(t *testing.T) {
		valid, invalid := ParseBulk("AA:BB:CC:DD:EE:FF, 11:22:33:44:55:66\nGGHHIIJJKKLL")

		require.Len(t, valid, 2)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", valid[0])
		assert.Equal(t, "11:22:33:44:55:66", valid[1])

		require.Len(t, invalid, 1)
		assert.Equal(t, "GGHHIIJJKKLL", invalid[0].Raw)
	})

	t.Run("구분자 없는 12자리 토큰은 콜론 삽입", func(t *testing.T) {
		valid, invalid := ParseBulk("c85a9fc7b9c0")
		require.Empty(t, invalid)
		require.Len(t, valid, 1)
		assert.Equal(t, "C8:5A:9F:C7:B9:C0", valid[0])
	})

	t.Run("파이프 구분자", func(t *testing.T) {
		valid, invalid := ParseBulk("AA:BB:CC:DD:EE:FF|11:22:33:44:55:66")
		assert.Empty(t, invalid)
		assert.Len(t, valid, 2)
	})

	t.Run("2개 이상 연속 공백 구분자", func(t *testing.T) {
		valid, invalid := ParseBulk("AA:BB:CC:DD:EE:FF  11:22:33:44:55:66")
		assert.Empty(t, invalid)
		assert.Len(t, valid, 2)
	})

	t.Run("빈 입력", func(t *testing.T) {
		valid, invalid := ParseBulk("")
		assert.Empty(t, valid)
		assert.Empty(t, invalid)
	})

	t.Run("실패한 토큰은 원본 텍스트 보존", func(t *testing.T) {
		_, invalid := ParseBulk("not-a-mac")
		require.Len(t, invalid, 1)
		assert.Equal(t, "not-a-mac", invalid[0].Raw)
	})
}

func TestCanonicalAndEqual(t *testing.T) {
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", Canonical(" aa:bb:cc:dd:ee:ff "))
	assert.True(t, Equal("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF"))
	assert.False(t, Equal("aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:00"))
}

// 정규화는 항상 17자 경계를 지킴
func TestNormalize_NeverExceedsCanonicalLength(t *testing.T) {
	long := strings.Repeat("ab12", 50)
	assert.Len(t, Normalize(long), CanonicalLength)
}
