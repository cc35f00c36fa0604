package types

// Event types for the pair module
const (
	EventTypePairExecute = "pair_execute"
)

// Attribute keys carried on every pair response
const (
	AttributeKeyContractAddr       = "_contract_address"
	AttributeKeyAction             = "action"
	AttributeKeyAssets             = "assets"
	AttributeKeyShare              = "share"
	AttributeKeyOfferAsset         = "offer_asset"
	AttributeKeyAskAsset           = "ask_asset"
	AttributeKeyOfferAmount        = "offer_amount"
	AttributeKeyReturnAmount       = "return_amount"
	AttributeKeyTaxAmount          = "tax_amount"
	AttributeKeySpreadAmount       = "spread_amount"
	AttributeKeyCommissionAmount   = "commission_amount"
	AttributeKeyWithdrawnShare     = "withdrawn_share"
	AttributeKeyRefundAssets       = "refund_assets"
	AttributeKeyLiquidityTokenAddr = "liquidity_token_addr"
	AttributeKeyCommission         = "commission"
	AttributeKeyOwner              = "owner"
)

// Action attribute values
const (
	ActionInstantiate       = "instantiate"
	ActionProvideLiquidity  = "provide_liquidity"
	ActionSwap              = "swap"
	ActionWithdrawLiquidity = "withdraw_liquidity"
	ActionUpdateConfig      = "update_config"
)
