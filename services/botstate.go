package services

import "sync"

const defaultKnowledgeBase = `Welcome to Saturnin Support! We're here to help you with:
- Order tracking and status updates
- Product information and availability
- Shipping information via DHL
- General customer support

Our business hours: Monday-Friday, 9 AM - 6 PM EST
Email: support@saturnin.com
Phone: 1-800-SATURNIN`

const defaultInstructions = `You are a helpful and friendly customer support AI for Saturnin.

Guidelines:
1. Always be polite, professional, and empathetic
2. Greet customers warmly and thank them for contacting Saturnin
3. When providing order information, include all relevant details (order number, status, items, total)
4. For tracking inquiries, provide current status and estimated delivery date
5. If you don't have information, apologize and offer to escalate to a human agent
6. Keep responses concise but complete
7. Always end with asking if there's anything else you can help with

Tone: Friendly, professional, helpful
Response length: 2-3 sentences for simple queries, more for complex ones
`

const defaultAgentKnowledgeBase = `Welcome to Saturnin E-commerce AI Agent!

I can help you with:
- Product catalog and inventory information
- Order tracking and management (Shopify integration)
- Shipping and delivery tracking (DHL integration)
- Marketing strategies and campaign planning
- Meta Ads (Facebook/Instagram) performance analysis
- Google Ads campaign insights and optimization
- E-commerce business intelligence and recommendations

I have access to real-time data from all your connected systems and can provide actionable insights to grow your business.`

// BotState holds the operator-editable bot texts. Process lifetime only,
// last write wins.
type BotState struct {
	mu                 sync.RWMutex
	knowledgeBase      string
	instructions       string
	agentKnowledgeBase string
}

func NewBotState() *BotState {
	return &BotState{
		knowledgeBase:      defaultKnowledgeBase,
		instructions:       defaultInstructions,
		agentKnowledgeBase: defaultAgentKnowledgeBase,
	}
}

func (s *BotState) KnowledgeBase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.knowledgeBase
}

func (s *BotState) SetKnowledgeBase(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knowledgeBase = content
}

func (s *BotState) Instructions() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instructions
}

func (s *BotState) SetInstructions(instructions string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instructions = instructions
}

func (s *BotState) AgentKnowledgeBase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agentKnowledgeBase
}

func (s *BotState) SetAgentKnowledgeBase(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agentKnowledgeBase = content
}
