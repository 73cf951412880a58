package bytes

import (
	"testing"

	"smarterdev/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBalanceEmbed_StreakField(t *testing.T) {
	active := &entities.BytesBalance{Balance: 100, StreakCount: 5}
	embed := BuildBalanceEmbed(active, "Tester")
	require.NotEmpty(t, embed.Fields)
	assert.Equal(t, "5 days", embed.Fields[0].Value)

	idle := &entities.BytesBalance{Balance: 100}
	embed = BuildBalanceEmbed(idle, "Tester")
	assert.Equal(t, "None", embed.Fields[0].Value)
}

func TestBuildHistoryEmbed_OnlyShowsInvolvedTransactions(t *testing.T) {
	userID := "111111111111111111"
	transactions := []*entities.BytesTransaction{
		{ID: "tx-sent", GiverID: userID, ReceiverID: "222222222222222222", Amount: 10},
		{ID: "tx-other", GiverID: "333333333333333333", ReceiverID: "444444444444444444", Amount: 77},
		{ID: "tx-grant", ReceiverID: userID, Amount: 5},
	}

	embed := BuildHistoryEmbed(transactions, userID)

	assert.Contains(t, embed.Description, "Sent **10**")
	assert.Contains(t, embed.Description, "Earned **5**")
	assert.NotContains(t, embed.Description, "77")
}

func TestBuildHistoryEmbed_Empty(t *testing.T) {
	embed := BuildHistoryEmbed(nil, "111111111111111111")
	assert.Equal(t, "No transactions yet.", embed.Description)
}
