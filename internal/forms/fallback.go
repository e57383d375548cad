package forms

import "ticket-store/internal/models"

// Static dropdown options served when the forms provider is unreachable or
// returns a form without the requested field.

var FallbackCompanySizes = []models.FormOption{
	{Value: "1-10", Label: "1-10"},
	{Value: "11-50", Label: "11-50"},
	{Value: "51-200", Label: "51-200"},
	{Value: "201-500", Label: "201-500"},
	{Value: "501-1000", Label: "501-1000"},
	{Value: "1000+", Label: "1000+"},
}

var FallbackPositions = []models.FormOption{
	{Value: "CEO, Founder", Label: "CEO, Founder"},
	{Value: "C-Level Executive", Label: "C-Level Executive"},
	{Value: "Managing Director", Label: "Managing Director"},
	{Value: "Business Development Manager", Label: "Business Development Manager"},
	{Value: "Product Manager", Label: "Product Manager"},
	{Value: "Project Manager", Label: "Project Manager"},
	{Value: "Marketing Manager", Label: "Marketing Manager"},
	{Value: "Community Manager", Label: "Community Manager"},
	{Value: "Software Engineer", Label: "Software Engineer"},
	{Value: "Blockchain Developer", Label: "Blockchain Developer"},
	{Value: "Researcher, Analyst", Label: "Researcher, Analyst"},
	{Value: "Designer", Label: "Designer"},
	{Value: "Investor", Label: "Investor"},
	{Value: "Trader", Label: "Trader"},
	{Value: "Content Creator", Label: "Content Creator"},
	{Value: "Student", Label: "Student"},
	{Value: "Other", Label: "Other"},
}

var FallbackCompanyFocus = []models.FormOption{
	{Value: "Administration, Legal", Label: "Administration, Legal"},
	{Value: "AI", Label: "AI"},
	{Value: "Association, Government Body", Label: "Association, Government Body"},
	{Value: "Banking, Payments", Label: "Banking, Payments"},
	{Value: "Cloud Infrastructure", Label: "Cloud Infrastructure"},
	{Value: "Community", Label: "Community"},
	{Value: "Consulting", Label: "Consulting"},
	{Value: "Consumer Goods", Label: "Consumer Goods"},
	{Value: "Consumer Tech (Web2)", Label: "Consumer Tech (Web2)"},
	{Value: "Creative, Entertainment, Art, Music, Sport", Label: "Creative, Entertainment, Art, Music, Sport"},
	{Value: "DAO", Label: "DAO"},
	{Value: "DeFi (Staking, Lending, Farming, Trading)", Label: "DeFi (Staking, Lending, Farming, Trading)"},
	{Value: "EdTech", Label: "EdTech"},
	{Value: "Events", Label: "Events"},
	{Value: "Exchange (CX, DX, Aggregator)", Label: "Exchange (CX, DX, Aggregator)"},
	{Value: "GameFi, Game", Label: "GameFi, Game"},
	{Value: "Hedge Fund, Market Maker, Trading Desk, OTC Desk", Label: "Hedge Fund, Market Maker, Trading Desk, OTC Desk"},
	{Value: "Identity Infrastructure", Label: "Identity Infrastructure"},
	{Value: "Intelligence, Analysis, Statistics", Label: "Intelligence, Analysis, Statistics"},
	{Value: "Launchpad", Label: "Launchpad"},
	{Value: "Marketplace, E-Commerce", Label: "Marketplace, E-Commerce"},
	{Value: "Media, Marketing Agency, Advertising Agency, Public Relations Agency", Label: "Media, Marketing Agency, Advertising Agency, Public Relations Agency"},
	{Value: "Metaverse", Label: "Metaverse"},
	{Value: "Mining", Label: "Mining"},
	{Value: "NFT", Label: "NFT"},
	{Value: "Protocol (L1,L2)", Label: "Protocol (L1,L2)"},
	{Value: "Real World Assets (RWA)", Label: "Real World Assets (RWA)"},
	{Value: "Security", Label: "Security"},
	{Value: "Social App", Label: "Social App"},
	{Value: "Software Development, Development House", Label: "Software Development, Development House"},
	{Value: "Staking Infrastructure", Label: "Staking Infrastructure"},
	{Value: "Stealth (I do not want to reveal my company focus)", Label: "Stealth (I do not want to reveal my company focus)"},
	{Value: "Telco", Label: "Telco"},
	{Value: "Trading Infrastructure", Label: "Trading Infrastructure"},
	{Value: "Travel", Label: "Travel"},
	{Value: "University", Label: "University"},
	{Value: "Venture Builder, Accelerator", Label: "Venture Builder, Accelerator"},
	{Value: "Venture Capital, Fund, Private Equity, Angel Investor", Label: "Venture Capital, Fund, Private Equity, Angel Investor"},
	{Value: "Wallet Infrastructure (Wallet, Custodian Solution)", Label: "Wallet Infrastructure (Wallet, Custodian Solution)"},
	{Value: "Web Hosting", Label: "Web Hosting"},
	{Value: "Other", Label: "Other"},
}

var FallbackNetworking = []models.FormOption{
	{Value: "Funding companies and gain funds for my project", Label: "Funding companies and gain funds for my project"},
	{Value: "Founders of projects built in Web3", Label: "Founders of projects built in Web3"},
	{Value: "Potential business partners for my company", Label: "Potential business partners for my company"},
	{Value: "Infrastructure solutions to scale", Label: "Infrastructure solutions to scale"},
	{Value: "NFT creators and collectors", Label: "NFT creators and collectors"},
	{Value: "Community leaders to acquire users for my project", Label: "Community leaders to acquire users for my project"},
	{Value: "Fellow Web3 enthusiasts to exchange insights", Label: "Fellow Web3 enthusiasts to exchange insights"},
}

var FallbackHearAbout = []models.FormOption{
	{Value: "Attended last year", Label: "Attended last year"},
	{Value: "Search engine / Website", Label: "Search engine / Website"},
	{Value: "Email newsletter", Label: "Email newsletter"},
	{Value: "Social media (Twitter, Linkedin, Instagram, etc)", Label: "Social media (Twitter, Linkedin, Instagram, etc)"},
	{Value: "Telegram channel / group", Label: "Telegram channel / group"},
	{Value: "Offline ads", Label: "Offline ads"},
	{Value: "Official partners (Sponsor, Media, Community, etc)", Label: "Official partners (Sponsor, Media, Community, etc)"},
	{Value: "News from media site", Label: "News from media site"},
	{Value: "Word of mouth", Label: "Word of mouth"},
}
